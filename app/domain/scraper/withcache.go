package scraper

import (
	"context"
	"encoding/json"
	"time"

	"github.com/openpl-dev/powerlifting-api/app/domain/cachestore"
	"github.com/openpl-dev/powerlifting-api/app/utils/httpclients/openpowerlifting"
	"github.com/openpl-dev/powerlifting-api/app/utils/logger"
)

// CachedResult is what route handlers hand back: the payload plus whether
// it came out of the cache. A nil Data means the resource could not be
// fetched — callers translate that into "not found", since upstream 404s
// (unknown meet codes, usernames) are routine.
type CachedResult[T any] struct {
	Data   *T   `json:"data"`
	Cached bool `json:"cache"`
}

// WithCache is the read-through path. On a hit it deserializes the stored
// payload. On a miss it invokes fetch, writes the result back best-effort
// (at most one write per miss; a write failure is logged, never surfaced)
// and returns the fetched value.
func WithCache[T any](ctx context.Context, store cachestore.Store, key string, ttl time.Duration, fetch func(context.Context) (*T, error)) CachedResult[T] {
	log := logger.GetLogger()

	raw, hit, err := store.Get(ctx, key)
	if err != nil {
		log.WithField("key", key).Warnf("cache read failed: %v", err)
	} else if hit {
		var out T
		if err := json.Unmarshal([]byte(raw), &out); err == nil {
			return CachedResult[T]{Data: &out, Cached: true}
		}
		log.WithField("key", key).Warnf("corrupt cache entry, refetching: %v", err)
	}

	data, err := fetch(ctx)
	if err != nil {
		if openpowerlifting.IsNotFound(err) {
			log.WithField("key", key).Debugf("upstream has no data: %v", err)
		} else {
			log.WithField("key", key).Warnf("upstream fetch failed: %v", err)
		}
		return CachedResult[T]{}
	}

	if payload, err := json.Marshal(data); err != nil {
		log.WithField("key", key).Warnf("cannot serialize payload for cache: %v", err)
	} else if err := store.Set(ctx, key, string(payload), ttl); err != nil {
		log.WithField("key", key).Warnf("cache write failed: %v", err)
	}
	return CachedResult[T]{Data: data}
}
