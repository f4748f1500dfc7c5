package cachestore

import (
	"context"
	"time"
)

// Entry is one persisted cache row. A nil ExpiresAt means the entry never
// expires. An entry whose ExpiresAt has passed is logically absent: readers
// treat it as a miss and delete it lazily.
type Entry struct {
	Key       string
	Value     string
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Entry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && e.ExpiresAt.Before(now)
}

// Store is a durable key/value store with optional expiry. Every call
// round-trips to storage; callers must not hammer it in tight loops without
// batching. Patterns use SQL-style wildcards (% matches any run of
// characters).
type Store interface {
	// Get returns the value for key, or ok=false on a miss. A row whose
	// expiry has passed is deleted and reported as a miss.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set upserts the value under key. A zero ttl stores the entry without
	// expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Del(ctx context.Context, key string) error
	DelPattern(ctx context.Context, pattern string) (int64, error)
	Keys(ctx context.Context, pattern string) ([]string, error)

	ClearExpired(ctx context.Context) (int64, error)
	ClearAll(ctx context.Context) error

	// Ready is a liveness probe; it reports false instead of failing.
	Ready(ctx context.Context) bool
}
