package usecase

import (
	"context"
	"log"
	"time"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
	"github.com/naka-gawa/gsoc-explorer/internal/gateway"
)

// WaitForReset blocks until the epoch second reset has passed.
// Waits are computed in whole seconds; a reset in the past returns immediately.
func WaitForReset(ctx context.Context, clock Clock, reset int64) error {
	wait := reset - clock.Now().Unix()
	if wait <= 0 {
		return nil
	}
	return clock.Sleep(ctx, time.Duration(wait)*time.Second)
}

// RateLimitGuard blocks callers while the search quota is below a threshold.
// It is best effort: other clients sharing the token are not accounted for.
type RateLimitGuard struct {
	fetcher gateway.Fetcher
	clock   Clock
	logger  *log.Logger
}

// NewRateLimitGuard creates a guard that probes through fetcher.
func NewRateLimitGuard(fetcher gateway.Fetcher, clock Clock, logger *log.Logger) *RateLimitGuard {
	return &RateLimitGuard{
		fetcher: fetcher,
		clock:   clock,
		logger:  logger,
	}
}

// Probe returns the current search quota. A failed probe reads as zero remaining
// with no reset time, so callers proceed and deal with any 403 themselves.
func (g *RateLimitGuard) Probe(ctx context.Context) domain.RateLimit {
	limit, err := g.fetcher.FetchRateLimit(ctx)
	if err != nil {
		g.logger.Printf("Error fetching rate limit info: %v\n", err)
		return domain.RateLimit{}
	}
	return limit
}

// Ensure probes the quota and waits for the reset when fewer than threshold requests remain.
func (g *RateLimitGuard) Ensure(ctx context.Context, threshold int) error {
	limit := g.Probe(ctx)
	if limit.Remaining >= threshold {
		return nil
	}
	g.logger.Printf("Rate limit low (%d remaining, need %d), waiting until %s\n",
		limit.Remaining, threshold, limit.ResetTime().Format(time.RFC3339))
	return WaitForReset(ctx, g.clock, limit.Reset)
}
