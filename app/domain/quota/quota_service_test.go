package quota

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/openpl-dev/powerlifting-api/app/domain/apicalllog"
	"github.com/openpl-dev/powerlifting-api/app/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users      map[uint]*user.User
	resetCalls int
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[uint]*user.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) FindByFilter(ctx context.Context, filter user.UserFilter) ([]*user.User, error) {
	out := []*user.User{}
	for _, u := range r.users {
		if filter.Verified != nil && u.Verified != *filter.Verified {
			continue
		}
		if filter.Admin != nil && u.Admin != *filter.Admin {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) IncrementCallCount(ctx context.Context, id uint) (int, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, fmt.Errorf("record not found")
	}
	u.ApiCallCount++
	return u.ApiCallCount, nil
}

func (r *fakeUserRepo) IncrementKeyVersion(ctx context.Context, id uint) (int, error) {
	u := r.users[id]
	u.ApiKeyVersion++
	return u.ApiKeyVersion, nil
}

func (r *fakeUserRepo) FindVerifiedAtThreshold(ctx context.Context) ([]*user.User, error) {
	out := []*user.User{}
	for _, u := range r.users {
		if u.Verified && u.ApiCallCount == u.ThresholdCount() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ResetCallCounts(ctx context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Verified {
			u.ApiCallCount = 0
			n++
		}
	}
	r.resetCalls++
	return n, nil
}

type fakeCallLog struct {
	entries []*apicalllog.ApiCallLog
}

func (f *fakeCallLog) Create(ctx context.Context, entry *apicalllog.ApiCallLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type sentMail struct {
	to      string
	subject string
}

type fakeMailer struct {
	sent []sentMail
}

func (f *fakeMailer) Send(ctx context.Context, to string, subject string, body string) error {
	f.sent = append(f.sent, sentMail{to: to, subject: subject})
	return nil
}

func TestTrackIncrementsAndRejects(t *testing.T) {
	u := &user.User{ID: 1, Email: "a@b.c", ApiCallLimit: 3, Verified: true}
	repo := newFakeUserRepo(u)
	logRepo := &fakeCallLog{}
	svc := NewService(repo, logRepo, &fakeMailer{})
	ctx := context.Background()

	res, err := svc.Track(ctx, u, "/v1/status")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.False(t, res.Exceeded)

	svc.Track(ctx, u, "/v1/status")
	res, err = svc.Track(ctx, u, "/v1/status")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.True(t, res.Exceeded, "count at limit rejects")

	// the rejected call still counted against quota
	res, err = svc.Track(ctx, u, "/v1/status")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Count)

	assert.Len(t, logRepo.entries, 4, "every call is audited, rejected ones included")
}

func TestTrackNeverRejectsAdmins(t *testing.T) {
	u := &user.User{ID: 1, Email: "a@b.c", ApiCallLimit: 1, Admin: true}
	svc := NewService(newFakeUserRepo(u), &fakeCallLog{}, &fakeMailer{})

	for i := 0; i < 5; i++ {
		res, err := svc.Track(context.Background(), u, "/v1/rankings")
		require.NoError(t, err)
		assert.False(t, res.Exceeded)
	}
}

func TestThresholdMailFiresExactlyOnce(t *testing.T) {
	u := &user.User{ID: 1, Email: "a@b.c", Name: "A", ApiCallLimit: 10, Verified: true}
	repo := newFakeUserRepo(u)
	mail := &fakeMailer{}
	svc := NewService(repo, &fakeCallLog{}, mail)
	ctx := context.Background()

	// drive the counter to exactly 70%
	for i := 0; i < 7; i++ {
		svc.Track(ctx, u, "/v1/status")
	}
	svc.NotifyAtThreshold(ctx)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "a@b.c", mail.sent[0].to)

	// past the threshold the user no longer matches; no re-fire
	svc.Track(ctx, u, "/v1/status")
	svc.NotifyAtThreshold(ctx)
	assert.Len(t, mail.sent, 1)

	svc.NotifyAtThreshold(ctx)
	assert.Len(t, mail.sent, 1)
}

func TestThresholdIgnoresUnverified(t *testing.T) {
	u := &user.User{ID: 1, Email: "a@b.c", ApiCallCount: 7, ApiCallLimit: 10}
	mail := &fakeMailer{}
	svc := NewService(newFakeUserRepo(u), &fakeCallLog{}, mail)

	svc.NotifyAtThreshold(context.Background())
	assert.Empty(t, mail.sent)
}

func TestMonthlyResetIsNoopOffTheFirst(t *testing.T) {
	u := &user.User{ID: 1, Email: "a@b.c", ApiCallCount: 42, ApiCallLimit: 100, Verified: true}
	repo := newFakeUserRepo(u)
	mail := &fakeMailer{}
	svc := NewService(repo, &fakeCallLog{}, mail)

	svc.RunMonthlyReset(context.Background(), time.Date(2026, 9, 15, 0, 5, 0, 0, time.UTC))

	assert.Equal(t, 42, u.ApiCallCount)
	assert.Zero(t, repo.resetCalls, "no database writes off the first")
	assert.Empty(t, mail.sent)
}

func TestMonthlyResetOnTheFirst(t *testing.T) {
	verified1 := &user.User{ID: 1, Email: "a@b.c", ApiCallCount: 42, ApiCallLimit: 100, Verified: true}
	verified2 := &user.User{ID: 2, Email: "d@e.f", ApiCallCount: 7, ApiCallLimit: 100, Verified: true}
	unverified := &user.User{ID: 3, Email: "g@h.i", ApiCallCount: 9, ApiCallLimit: 100}
	repo := newFakeUserRepo(verified1, verified2, unverified)
	mail := &fakeMailer{}
	svc := NewService(repo, &fakeCallLog{}, mail)

	svc.RunMonthlyReset(context.Background(), time.Date(2026, 9, 1, 0, 5, 0, 0, time.UTC))

	assert.Zero(t, verified1.ApiCallCount)
	assert.Zero(t, verified2.ApiCallCount)
	assert.Equal(t, 9, unverified.ApiCallCount, "unverified users untouched")
	assert.Len(t, mail.sent, 2, "exactly one notice per verified user")
}
