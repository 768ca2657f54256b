package usecase

import (
	"context"
	"errors"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
	"github.com/naka-gawa/gsoc-explorer/internal/gateway"
	"golang.org/x/sync/errgroup"
)

type countFunc func(ctx context.Context, owner, repo string) (int, error)

// enrich fills the counts key needs, concurrently across repositories.
// A failed count is logged and recorded as zero.
func (a *Aggregator) enrich(ctx context.Context, repos []domain.Repository, key domain.SortKey) {
	a.logger.Printf("Usecase: Enriching %d repositories for %s...\n", len(repos), key)

	var eg errgroup.Group
	eg.SetLimit(enrichConcurrency)
	for i := range repos {
		r := &repos[i]
		eg.Go(func() error {
			if key.NeedsPullRequests() {
				n := a.countOrZero(ctx, "pull requests", r, a.fetcher.CountPullRequests)
				r.PullRequestCount = &n
			}
			if key.NeedsCommits() {
				n := a.countOrZero(ctx, "commits", r, a.fetcher.CountCommits)
				r.CommitCount = &n
			}
			return nil
		})
	}
	_ = eg.Wait()
}

func (a *Aggregator) countOrZero(ctx context.Context, what string, r *domain.Repository, count countFunc) int {
	n, err := count(ctx, r.Owner.Login, r.Name)
	if err == nil {
		return n
	}
	a.logger.Printf("Error fetching %s for %s/%s: %v\n", what, r.Owner.Login, r.Name, err)

	var rlErr *gateway.RateLimitedError
	if errors.As(err, &rlErr) {
		if werr := WaitForReset(ctx, a.clock, rlErr.Reset); werr != nil {
			a.logger.Printf("  wait for rate limit reset aborted: %v\n", werr)
		}
	}
	return 0
}
