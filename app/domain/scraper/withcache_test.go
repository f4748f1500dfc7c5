package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openpl-dev/powerlifting-api/app/domain/cachestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	entries  map[string]string
	setErr   error
	getErr   error
	setCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]string{}}
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.entries[key]
	return v, ok, nil
}

func (f *fakeStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = value
	return nil
}

func (f *fakeStore) Del(ctx context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

func (f *fakeStore) DelPattern(ctx context.Context, pattern string) (int64, error) {
	return 0, nil
}

func (f *fakeStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0, len(f.entries))
	for k := range f.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

func (f *fakeStore) ClearExpired(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakeStore) ClearAll(ctx context.Context) error              { return nil }
func (f *fakeStore) Ready(ctx context.Context) bool                  { return true }

var _ cachestore.Store = (*fakeStore)(nil)

type payload struct {
	Value string `json:"value"`
}

func TestWithCacheMissThenHit(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()
	fetches := 0
	fetch := func(ctx context.Context) (*payload, error) {
		fetches++
		return &payload{Value: "fresh"}, nil
	}

	res := WithCache(ctx, store, "meet-abc/123", time.Hour, fetch)
	require.NotNil(t, res.Data)
	assert.False(t, res.Cached)
	assert.Equal(t, "fresh", res.Data.Value)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, 1, store.setCalls)

	res = WithCache(ctx, store, "meet-abc/123", time.Hour, fetch)
	require.NotNil(t, res.Data)
	assert.True(t, res.Cached)
	assert.Equal(t, "fresh", res.Data.Value)
	assert.Equal(t, 1, fetches, "hit must not refetch")
	assert.Equal(t, 1, store.setCalls, "hit must not rewrite")
}

func TestWithCacheFetchFailure(t *testing.T) {
	store := newFakeStore()
	res := WithCache(context.Background(), store, "user-nobody", time.Hour, func(ctx context.Context) (*payload, error) {
		return nil, errors.New("boom")
	})
	assert.Nil(t, res.Data)
	assert.False(t, res.Cached)
	assert.Zero(t, store.setCalls, "failed fetch must not write")
}

func TestWithCacheWriteFailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	store.setErr = errors.New("disk full")
	res := WithCache(context.Background(), store, "status", time.Hour, func(ctx context.Context) (*payload, error) {
		return &payload{Value: "ok"}, nil
	})
	require.NotNil(t, res.Data, "caller still gets fetched data")
	assert.Equal(t, "ok", res.Data.Value)
}

func TestWithCacheReadFailureFallsThroughToFetch(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection reset")
	res := WithCache(context.Background(), store, "records", time.Hour, func(ctx context.Context) (*payload, error) {
		return &payload{Value: "fetched"}, nil
	})
	require.NotNil(t, res.Data)
	assert.False(t, res.Cached)
}

func TestWithCacheCorruptEntryRefetches(t *testing.T) {
	store := newFakeStore()
	store.entries["status"] = "{not json"
	res := WithCache(context.Background(), store, "status", time.Hour, func(ctx context.Context) (*payload, error) {
		return &payload{Value: "repaired"}, nil
	})
	require.NotNil(t, res.Data)
	assert.False(t, res.Cached)
	assert.Equal(t, "repaired", res.Data.Value)
}
