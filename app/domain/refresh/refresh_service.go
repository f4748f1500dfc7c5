package refresh

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mileusna/crontab"
	"github.com/openpl-dev/powerlifting-api/app/domain/cachestore"
	"github.com/openpl-dev/powerlifting-api/app/domain/keycodec"
	"github.com/openpl-dev/powerlifting-api/app/domain/mailer"
	"github.com/openpl-dev/powerlifting-api/app/domain/scraper"
	"github.com/openpl-dev/powerlifting-api/app/domain/user"
	"github.com/openpl-dev/powerlifting-api/app/utils/logger"
	"github.com/openpl-dev/powerlifting-api/config/environment_variables"
	"github.com/sirupsen/logrus"
)

// upstreamFetcher re-fetches the resource behind a decoded key and returns
// the serialized payload. Satisfied by scraper.Service.
type upstreamFetcher interface {
	FetchForDescriptor(ctx context.Context, desc *keycodec.Descriptor) (string, error)
}

// RefreshService keeps hot cache keys warm without waiting for client
// traffic: it walks every live key, inverts it back into an upstream
// request and rewrites the entry.
type RefreshService struct {
	store    cachestore.Store
	fetcher  upstreamFetcher
	userRepo user.UserRepository
	mail     mailer.Mailer
	throttle time.Duration

	running atomic.Bool
}

func NewService(store cachestore.Store, scraperService *scraper.Service, userRepo user.UserRepository, mail mailer.Mailer) *RefreshService {
	return &RefreshService{
		store:    store,
		fetcher:  scraperService,
		userRepo: userRepo,
		mail:     mail,
		throttle: time.Duration(environment_variables.EnvironmentVariables.REFRESH_THROTTLE_SECONDS) * time.Second,
	}
}

// Summary is one completed refresh cycle. Partial failure is a normal
// outcome; only a cycle that cannot run at all is an error.
type Summary struct {
	Attempted       int
	Succeeded       int
	Failed          int
	Skipped         int
	Duration        time.Duration
	FailedEndpoints []string
}

func (s *RefreshService) Start(ctx context.Context, ctab *crontab.Crontab) {
	s.RunCycle(ctx)
	ctab.AddJob("*/2 * * * *", func() {
		s.RunCycle(ctx)
	})
}

// RunCycle walks all live keys once. Cycles never overlap: a trigger that
// fires while one is in flight is dropped.
func (s *RefreshService) RunCycle(ctx context.Context) Summary {
	log := logger.GetLogger()
	if !s.running.CompareAndSwap(false, true) {
		log.Warn("refresh: previous cycle still running, skipping trigger")
		return Summary{}
	}
	defer s.running.Store(false)

	start := time.Now()
	summary := Summary{}

	keys, err := s.store.Keys(ctx, "%")
	if err != nil {
		log.Errorf("refresh: cannot list cache keys: %v", err)
		return summary
	}
	summary.Attempted = len(keys)

	for i, key := range keys {
		if ctx.Err() != nil {
			break
		}
		// sequential on purpose, with a pause between requests, so a big
		// key space does not hammer the upstream origin
		if i > 0 && s.throttle > 0 {
			time.Sleep(s.throttle)
		}
		s.refreshKey(ctx, key, &summary)
	}

	summary.Duration = time.Since(start)
	log.WithFields(logrus.Fields{
		"attempted": summary.Attempted,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
		"skipped":   summary.Skipped,
		"duration":  summary.Duration.String(),
		"failures":  summary.FailedEndpoints,
	}).Info("refresh: cycle complete")

	if summary.Failed > 0 {
		s.reportFailures(ctx, summary)
	}
	return summary
}

// refreshKey handles a single key. A failure of any shape — undecodable
// key, network error, missing DOM, even a panic in a parser — is recorded
// and must never stop the rest of the cycle.
func (s *RefreshService) refreshKey(ctx context.Context, key string, summary *Summary) {
	log := logger.GetLogger()
	defer func() {
		if r := recover(); r != nil {
			summary.Failed++
			summary.FailedEndpoints = append(summary.FailedEndpoints, key)
			log.Errorf("refresh: panic refreshing %q: %v", key, r)
		}
	}()

	desc, err := keycodec.Decode(key)
	if err != nil {
		summary.Skipped++
		if errors.Is(err, keycodec.ErrInternalKey) {
			log.Debugf("refresh: skipping %v", err)
		} else {
			log.Warnf("refresh: skipping %v", err)
		}
		return
	}

	payload, err := s.fetcher.FetchForDescriptor(ctx, desc)
	if err != nil {
		summary.Failed++
		summary.FailedEndpoints = append(summary.FailedEndpoints, desc.Path)
		log.Warnf("refresh: %s failed: %v", desc.Path, err)
		return
	}

	// unconditional write, bypassing the read-through miss path
	if err := s.store.Set(ctx, key, payload, scraper.TTLFor(desc.Kind)); err != nil {
		summary.Failed++
		summary.FailedEndpoints = append(summary.FailedEndpoints, desc.Path)
		log.Warnf("refresh: cache write for %q failed: %v", key, err)
		return
	}
	summary.Succeeded++
}

func (s *RefreshService) reportFailures(ctx context.Context, summary Summary) {
	log := logger.GetLogger()
	admin := true
	admins, err := s.userRepo.FindByFilter(ctx, user.UserFilter{Admin: &admin})
	if err != nil {
		log.Warnf("refresh: cannot list admins for failure report: %v", err)
		return
	}
	body := fmt.Sprintf(
		"Refresh cycle finished in %s with %d/%d failures.\n\nFailed endpoints:\n%s\n",
		summary.Duration, summary.Failed, summary.Attempted,
		strings.Join(summary.FailedEndpoints, "\n"),
	)
	for _, u := range admins {
		if err := s.mail.Send(ctx, u.Email, "Cache refresh failures", body); err != nil {
			log.Warnf("refresh: failure report to %s failed: %v", u.Email, err)
		}
	}
}
