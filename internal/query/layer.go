// Package query sits between the console pages and the housing service:
// list reads are cached and de-duplicated, writes invalidate the matching
// list so the next read reflects them.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"sakan/console/internal/normalize"
)

// Fetcher is the authenticated remote interface the layer consumes.
type Fetcher interface {
	List(ctx context.Context, collection string) ([]byte, error)
	Create(ctx context.Context, collection string, payload []byte) ([]byte, error)
	Update(ctx context.Context, collection string, id int64, payload []byte) ([]byte, error)
	Delete(ctx context.Context, collection string, id int64) error
}

const cachePrefix = "console:cache:"

type Layer struct {
	fetcher Fetcher
	cache   *redis.Client
	ttl     time.Duration
	group   singleflight.Group
}

// New builds the layer. cache may be nil, in which case every read goes to
// the service (still de-duplicated while in flight).
func New(fetcher Fetcher, cache *redis.Client, ttl time.Duration) *Layer {
	if ttl == 0 {
		ttl = time.Minute
	}
	return &Layer{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
	}
}

// List returns the canonical list for an entity kind as marshaled JSON.
// Canonical records are derived values: on a cache miss the raw payload is
// fetched, unwrapped once, normalized element by element and the result
// cached whole. Cache trouble degrades to a direct fetch, never to a failure.
func (l *Layer) List(ctx context.Context, kind normalize.Kind) (json.RawMessage, error) {
	key := cachePrefix + string(kind)

	if l.cache != nil {
		cached, err := l.cache.Get(ctx, key).Result()
		if err == nil {
			return json.RawMessage(cached), nil
		}
		if err != redis.Nil {
			log.Printf("WARNING: cache read for %s: %v", kind, err)
		}
	}

	value, err, _ := l.group.Do(string(kind), func() (any, error) {
		raw, err := l.fetcher.List(ctx, string(kind))
		if err != nil {
			return nil, err
		}
		records, err := normalize.Records(kind, raw)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("marshal canonical %s: %w", kind, err)
		}
		if l.cache != nil {
			if err := l.cache.Set(ctx, key, data, l.ttl).Err(); err != nil {
				log.Printf("WARNING: cache write for %s: %v", kind, err)
			}
		}
		return json.RawMessage(data), nil
	})
	if err != nil {
		return nil, err
	}
	return value.(json.RawMessage), nil
}

// Create posts a new entity and invalidates the kind's list. The layer never
// patches cached lists in place; the follow-up fetch re-normalizes.
func (l *Layer) Create(ctx context.Context, kind normalize.Kind, payload json.RawMessage) error {
	if _, err := l.fetcher.Create(ctx, string(kind), payload); err != nil {
		return err
	}
	l.Invalidate(ctx, kind)
	return nil
}

func (l *Layer) Update(ctx context.Context, kind normalize.Kind, id int64, payload json.RawMessage) error {
	if _, err := l.fetcher.Update(ctx, string(kind), id, payload); err != nil {
		return err
	}
	l.Invalidate(ctx, kind)
	return nil
}

func (l *Layer) Delete(ctx context.Context, kind normalize.Kind, id int64) error {
	if err := l.fetcher.Delete(ctx, string(kind), id); err != nil {
		return err
	}
	l.Invalidate(ctx, kind)
	return nil
}

// Invalidate drops the cached list for a kind.
func (l *Layer) Invalidate(ctx context.Context, kind normalize.Kind) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Del(ctx, cachePrefix+string(kind)).Err(); err != nil {
		log.Printf("WARNING: cache invalidate for %s: %v", kind, err)
	}
}
