package user

import "context"

// User is owned by the account system; this module only ever mutates
// ApiCallCount and ApiKeyVersion.
type User struct {
	ID            uint
	Email         string
	Name          string
	ApiCallCount  int
	ApiCallLimit  int
	ApiKeyVersion int
	Admin         bool
	Verified      bool
	Deleted       bool
}

// ThresholdCount is the call count at which the quota warning fires: the
// 70% mark of the user's monthly limit, truncated.
func (u *User) ThresholdCount() int {
	return u.ApiCallLimit * 7 / 10
}

type UserFilter struct {
	Email    *string
	Verified *bool
	Admin    *bool
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByFilter(ctx context.Context, filter UserFilter) ([]*User, error)

	// IncrementCallCount bumps api_call_count by one as a single storage
	// level update (no read-modify-write) and returns the new count.
	IncrementCallCount(ctx context.Context, id uint) (int, error)

	// IncrementKeyVersion bumps api_key_version by one atomically and
	// returns the new version. Every token issued before the bump becomes
	// invalid; that is the entire revocation mechanism.
	IncrementKeyVersion(ctx context.Context, id uint) (int, error)

	// FindVerifiedAtThreshold returns verified users sitting exactly at
	// 70% of their limit. Exactly-at, not at-or-above: a >= comparison
	// would re-fire the warning on every subsequent call.
	FindVerifiedAtThreshold(ctx context.Context) ([]*User, error)

	// ResetCallCounts zeroes every verified user's call count and reports
	// how many rows changed.
	ResetCallCounts(ctx context.Context) (int64, error)
}
