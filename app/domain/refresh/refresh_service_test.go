package refresh

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/openpl-dev/powerlifting-api/app/domain/cachestore"
	"github.com/openpl-dev/powerlifting-api/app/domain/keycodec"
	"github.com/openpl-dev/powerlifting-api/app/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	entries map[string]string
	keys    []string
}

func newFakeStore(keys ...string) *fakeStore {
	store := &fakeStore{entries: map[string]string{}, keys: keys}
	for _, k := range keys {
		store.entries[k] = "stale"
	}
	return store
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := f.entries[key]
	return v, ok, nil
}

func (f *fakeStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeStore) Del(ctx context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

func (f *fakeStore) DelPattern(ctx context.Context, pattern string) (int64, error) { return 0, nil }

func (f *fakeStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	out := append([]string{}, f.keys...)
	sort.Strings(out)
	return out, nil
}

func (f *fakeStore) ClearExpired(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakeStore) ClearAll(ctx context.Context) error              { return nil }
func (f *fakeStore) Ready(ctx context.Context) bool                  { return true }

var _ cachestore.Store = (*fakeStore)(nil)

type fakeFetcher struct {
	failPaths map[string]bool
	fetched   []string
}

func (f *fakeFetcher) FetchForDescriptor(ctx context.Context, desc *keycodec.Descriptor) (string, error) {
	f.fetched = append(f.fetched, desc.Path)
	if f.failPaths[desc.Path] {
		return "", errors.New("upstream flaked")
	}
	return fmt.Sprintf(`{"path":%q}`, desc.Path), nil
}

type fakeUserRepo struct {
	users []*user.User
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error)      { return nil, nil }
func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) FindByFilter(ctx context.Context, filter user.UserFilter) ([]*user.User, error) {
	out := []*user.User{}
	for _, u := range r.users {
		if filter.Admin != nil && u.Admin != *filter.Admin {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}
func (r *fakeUserRepo) IncrementCallCount(ctx context.Context, id uint) (int, error)  { return 0, nil }
func (r *fakeUserRepo) IncrementKeyVersion(ctx context.Context, id uint) (int, error) { return 0, nil }
func (r *fakeUserRepo) FindVerifiedAtThreshold(ctx context.Context) ([]*user.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) ResetCallCounts(ctx context.Context) (int64, error) { return 0, nil }

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(ctx context.Context, to string, subject string, body string) error {
	f.sent = append(f.sent, to)
	return nil
}

func newTestService(store *fakeStore, fetcher *fakeFetcher, repo *fakeUserRepo, mail *fakeMailer) *RefreshService {
	return &RefreshService{
		store:    store,
		fetcher:  fetcher,
		userRepo: repo,
		mail:     mail,
	}
}

func TestRunCycleMixedKeys(t *testing.T) {
	store := newFakeStore(
		"status",
		"unknown-key-type",
		"rankings-abc-def",
		"federation-uspa-2024",
	)
	fetcher := &fakeFetcher{failPaths: map[string]bool{"/mlist/uspa/2024": true}}
	mail := &fakeMailer{}
	svc := newTestService(store, fetcher, &fakeUserRepo{}, mail)

	summary := svc.RunCycle(context.Background())

	assert.Equal(t, 4, summary.Attempted)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, summary.Skipped, "unknown and malformed keys are skipped, not fatal")
	assert.Equal(t, []string{"/mlist/uspa/2024"}, summary.FailedEndpoints)

	// the fetchable key was rewritten, the stale values untouched
	assert.Contains(t, store.entries["status"], "/status")
	assert.Equal(t, "stale", store.entries["federation-uspa-2024"])
	assert.Equal(t, "stale", store.entries["unknown-key-type"])
}

func TestRunCycleEmptyStore(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeFetcher{}, &fakeUserRepo{}, &fakeMailer{})
	summary := svc.RunCycle(context.Background())
	assert.Zero(t, summary.Attempted)
	assert.Zero(t, summary.Failed)
}

func TestRunCycleSkipsInternalKeys(t *testing.T) {
	store := newFakeStore(keycodec.InternalHostnameKey, keycodec.InternalGlobalStatusKey, "records")
	fetcher := &fakeFetcher{}
	svc := newTestService(store, fetcher, &fakeUserRepo{}, &fakeMailer{})

	summary := svc.RunCycle(context.Background())
	assert.Equal(t, 3, summary.Attempted)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, []string{"/records"}, fetcher.fetched, "internal keys never reach the fetcher")
}

func TestRunCycleMailsAdminsOnFailures(t *testing.T) {
	store := newFakeStore("status")
	fetcher := &fakeFetcher{failPaths: map[string]bool{"/status": true}}
	repo := &fakeUserRepo{users: []*user.User{
		{ID: 1, Email: "admin@example.com", Admin: true},
		{ID: 2, Email: "user@example.com"},
	}}
	mail := &fakeMailer{}
	svc := newTestService(store, fetcher, repo, mail)

	svc.RunCycle(context.Background())
	require.Len(t, mail.sent, 1, "only admins get the failure report")
	assert.Equal(t, "admin@example.com", mail.sent[0])
}

func TestRunCycleRefusesToOverlap(t *testing.T) {
	store := newFakeStore("status")
	fetcher := &fakeFetcher{}
	svc := newTestService(store, fetcher, &fakeUserRepo{}, &fakeMailer{})

	svc.running.Store(true)
	summary := svc.RunCycle(context.Background())
	assert.Zero(t, summary.Attempted)
	assert.Empty(t, fetcher.fetched)

	svc.running.Store(false)
	summary = svc.RunCycle(context.Background())
	assert.Equal(t, 1, summary.Attempted)
}
