package normalize

import "github.com/tidwall/gjson"

// UnwrapList accepts either a bare JSON array or an object wrapping the array
// under "data" and returns the elements. The shape is detected here, exactly
// once per fetch; per-record normalizers never re-inspect it. Anything else
// yields an empty list so rendering stays total.
func UnwrapList(raw []byte) []gjson.Result {
	doc := gjson.ParseBytes(raw)
	if doc.IsArray() {
		return doc.Array()
	}
	if inner := doc.Get("data"); inner.IsArray() {
		return inner.Array()
	}
	return nil
}
