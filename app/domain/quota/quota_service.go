package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"
	"github.com/openpl-dev/powerlifting-api/app/domain/apicalllog"
	"github.com/openpl-dev/powerlifting-api/app/domain/mailer"
	"github.com/openpl-dev/powerlifting-api/app/domain/user"
	"github.com/openpl-dev/powerlifting-api/app/utils/logger"
)

type QuotaService struct {
	userRepo    user.UserRepository
	callLogRepo apicalllog.ApiCallLogRepository
	mail        mailer.Mailer
}

func NewService(userRepo user.UserRepository, callLogRepo apicalllog.ApiCallLogRepository, mail mailer.Mailer) *QuotaService {
	return &QuotaService{
		userRepo:    userRepo,
		callLogRepo: callLogRepo,
		mail:        mail,
	}
}

type TrackResult struct {
	Count    int
	Exceeded bool
}

// Track records one authenticated API call. The increment happens as an
// atomic storage-level update and counts against the quota even when the
// call is then rejected. Admins are never rejected.
func (s *QuotaService) Track(ctx context.Context, u *user.User, path string) (TrackResult, error) {
	count, err := s.userRepo.IncrementCallCount(ctx, u.ID)
	if err != nil {
		return TrackResult{}, err
	}
	if err := s.callLogRepo.Create(ctx, &apicalllog.ApiCallLog{UserID: u.ID, Path: path}); err != nil {
		logger.GetLogger().Warnf("quota: failed to write call log for user %d: %v", u.ID, err)
	}
	return TrackResult{
		Count:    count,
		Exceeded: count >= u.ApiCallLimit && !u.Admin,
	}, nil
}

// Start registers the two scheduled jobs: the hourly threshold warning and
// the daily monthly-reset check.
func (s *QuotaService) Start(ctx context.Context, ctab *crontab.Crontab) {
	ctab.AddJob("0 * * * *", func() {
		s.NotifyAtThreshold(ctx)
	})
	ctab.AddJob("5 0 * * *", func() {
		s.RunMonthlyReset(ctx, time.Now())
	})
}

// NotifyAtThreshold mails every verified user sitting exactly at 70% of
// their limit. The exactly-at query is what makes the warning one-shot:
// once the count moves past the threshold the user no longer matches.
func (s *QuotaService) NotifyAtThreshold(ctx context.Context) {
	log := logger.GetLogger()
	users, err := s.userRepo.FindVerifiedAtThreshold(ctx)
	if err != nil {
		log.Errorf("quota: threshold query failed: %v", err)
		return
	}
	for _, u := range users {
		body := fmt.Sprintf(
			"Hi %s,\n\nYou have used %d of your %d monthly API calls (70%%). "+
				"Your counter resets on the first of the month.\n",
			u.Name, u.ApiCallCount, u.ApiCallLimit,
		)
		if err := s.mail.Send(ctx, u.Email, "API quota warning", body); err != nil {
			log.Warnf("quota: threshold mail to %s failed: %v", u.Email, err)
		}
	}
}

// RunMonthlyReset is a strict no-op unless now is the first day of the
// month; on the first it zeroes every verified user's counter and mails
// each of them a reset notice.
func (s *QuotaService) RunMonthlyReset(ctx context.Context, now time.Time) {
	if now.Day() != 1 {
		return
	}
	log := logger.GetLogger()

	reset, err := s.userRepo.ResetCallCounts(ctx)
	if err != nil {
		log.Errorf("quota: monthly reset failed: %v", err)
		return
	}
	log.Infof("quota: monthly reset cleared %d counters", reset)

	verified := true
	users, err := s.userRepo.FindByFilter(ctx, user.UserFilter{Verified: &verified})
	if err != nil {
		log.Errorf("quota: could not list verified users for reset notice: %v", err)
		return
	}
	for _, u := range users {
		body := fmt.Sprintf(
			"Hi %s,\n\nYour monthly API call counter has been reset. "+
				"You have %d calls available.\n",
			u.Name, u.ApiCallLimit,
		)
		if err := s.mail.Send(ctx, u.Email, "API quota reset", body); err != nil {
			log.Warnf("quota: reset mail to %s failed: %v", u.Email, err)
		}
	}
}
