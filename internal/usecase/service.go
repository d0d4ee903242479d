package usecase

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sawaday/gh-log/internal/cache"
	"github.com/sawaday/gh-log/internal/gateway"
)

// MonthService retrieves a month's snapshot, preferring the local cache and
// falling back to GitHub on a miss or when forced.
type MonthService struct {
	fetcher gateway.Fetcher
	cache   *cache.Cache
	logger  *log.Logger
}

// NewMonthService creates a new MonthService instance.
func NewMonthService(fetcher gateway.Fetcher, c *cache.Cache, logger *log.Logger) *MonthService {
	return &MonthService{
		fetcher: fetcher,
		cache:   c,
		logger:  logger,
	}
}

// Snapshot returns the cached snapshot for a month when it is fresh, or
// fetches the PR list and reviewed count concurrently, persists the result,
// and returns it. force bypasses the cache read, never the write.
func (s *MonthService) Snapshot(ctx context.Context, month string, force bool) (*cache.Snapshot, error) {
	if !force {
		snap, err := s.cache.Load(month, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		if snap != nil {
			s.logger.Printf("Service: Cache hit for %s.", month)
			return snap, nil
		}
	}

	s.logger.Printf("Service: Fetching data from GitHub for %s...", month)
	var snap cache.Snapshot
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		snap.PRs, err = s.fetcher.FetchPullRequests(egCtx, month)
		return err
	})
	eg.Go(func() error {
		var err error
		snap.ReviewedCount, err = s.fetcher.FetchReviewedCount(egCtx, month)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	snap.Month = month
	snap.Timestamp = time.Now().UTC()
	if err := s.cache.Save(&snap); err != nil {
		return nil, err
	}
	s.logger.Printf("Service: Cached %d PRs for %s.", len(snap.PRs), month)
	return &snap, nil
}
