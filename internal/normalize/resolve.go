// Package normalize reshapes raw housing-service payloads into canonical
// records. The service's field names and nesting are not stable across
// endpoints or versions, so every logical field is resolved through a fixed
// ordered list of candidate paths; the first present, non-null value wins and
// a documented default applies when none match. All functions are pure.
package normalize

import (
	"github.com/tidwall/gjson"
)

// first returns the first candidate path that exists and is not JSON null.
func first(doc gjson.Result, paths ...string) (gjson.Result, bool) {
	for _, path := range paths {
		value := doc.Get(path)
		if value.Exists() && value.Type != gjson.Null {
			return value, true
		}
	}
	return gjson.Result{}, false
}

// Str resolves a string field. Empty strings fall through to the next
// candidate, matching how the console treats blank values as absent.
func Str(doc gjson.Result, fallback string, paths ...string) string {
	for _, path := range paths {
		value := doc.Get(path)
		if value.Exists() && value.Type != gjson.Null && value.String() != "" {
			return value.String()
		}
	}
	return fallback
}

// Int resolves a numeric identifier or count. An explicit 0 is kept.
func Int(doc gjson.Result, fallback int64, paths ...string) int64 {
	value, ok := first(doc, paths...)
	if !ok {
		return fallback
	}
	return value.Int()
}

// Float resolves a numeric amount.
func Float(doc gjson.Result, fallback float64, paths ...string) float64 {
	value, ok := first(doc, paths...)
	if !ok {
		return fallback
	}
	return value.Float()
}

// Block resolves a nested object under any of the candidate keys. It returns
// nil when no candidate holds an object, so optional sub-records stay absent
// instead of failing the record.
func Block(doc gjson.Result, paths ...string) map[string]any {
	value, ok := first(doc, paths...)
	if !ok || !value.IsObject() {
		return nil
	}
	object, ok := value.Value().(map[string]any)
	if !ok {
		return nil
	}
	return object
}
