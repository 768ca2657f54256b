// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
	"github.com/naka-gawa/gsoc-explorer/internal/gateway"
	"golang.org/x/sync/errgroup"
)

const (
	plainMinStars      = "stars:>100"
	plainPageSize      = 30
	plainRateThreshold = 10

	orgMinStars   = "stars:>10"
	orgPageSize   = 20
	orgBatchSize  = 3
	orgBatchDelay = 1 * time.Second

	enrichConcurrency = 10
)

// Aggregator is the use case for searching repositories.
// It orchestrates rate-limit checks, searching, sorting and enrichment.
type Aggregator struct {
	fetcher gateway.Fetcher
	guard   *RateLimitGuard
	clock   Clock
	orgs    []string
	logger  *log.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock replaces the system clock.
func WithClock(clock Clock) Option {
	return func(a *Aggregator) { a.clock = clock }
}

// WithOrganizations replaces the GSOC allow-list.
func WithOrganizations(orgs []string) Option {
	return func(a *Aggregator) { a.orgs = orgs }
}

// NewAggregator creates a new Aggregator instance.
// A nil fetcher means no credential is configured; every Fetch then fails with ErrTokenNotConfigured.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher: fetcher,
		clock:   SystemClock{},
		orgs:    domain.GSOCHandles(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.guard = NewRateLimitGuard(fetcher, a.clock, logger)
	return a
}

// Fetch runs one complete fetch cycle for f and returns the final ordered list.
// Errors are terminal for this cycle only.
func (a *Aggregator) Fetch(ctx context.Context, f domain.Filter) ([]domain.Repository, error) {
	if a.fetcher == nil {
		return nil, ErrTokenNotConfigured
	}
	a.logger.Printf("Usecase: Starting repository fetch (gsoc=%t, sort=%s)...\n", f.GSOCOnly, f.Sort)

	if err := a.guard.Ensure(ctx, plainRateThreshold); err != nil {
		return nil, err
	}

	if f.GSOCOnly {
		return a.fetchGSOC(ctx, f)
	}
	return a.fetchPlain(ctx, f)
}

// BuildQuery returns the search query for a plain search.
func BuildQuery(f domain.Filter) string {
	var parts []string
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, q)
	}
	parts = append(parts, plainMinStars)
	if f.HasLanguage() {
		parts = append(parts, qualifier("language", f.Language))
	}
	if f.HasTopic() {
		parts = append(parts, qualifier("topic", f.Topic))
	}
	return strings.Join(parts, " ")
}

func qualifier(name, value string) string {
	if strings.ContainsAny(value, " \t") {
		return fmt.Sprintf("%s:%q", name, value)
	}
	return name + ":" + value
}

// fetchPlain issues a single search and returns its items in transport order.
func (a *Aggregator) fetchPlain(ctx context.Context, f domain.Filter) ([]domain.Repository, error) {
	query := BuildQuery(f)
	repos, err := a.fetcher.SearchRepositories(ctx, query, plainPageSize)
	if err != nil {
		a.logger.Printf("Error fetching repositories: %v\n", err)
		var rlErr *gateway.RateLimitedError
		if errors.As(err, &rlErr) {
			if werr := WaitForReset(ctx, a.clock, rlErr.Reset); werr != nil {
				return nil, werr
			}
			return nil, userError(msgRateLimitExceeded, err)
		}
		if errors.Is(err, gateway.ErrInvalidResponse) {
			return nil, userError(msgInvalidResponse, err)
		}
		return nil, userError("Failed to fetch repositories: "+upstreamMessage(err), err)
	}
	a.logger.Printf("Usecase: Plain search returned %d repositories.\n", len(repos))
	return repos, nil
}

// fetchGSOC searches every allow-listed organization in sequential batches.
// Per-organization failures are collected; only an empty aggregate is an error.
func (a *Aggregator) fetchGSOC(ctx context.Context, f domain.Filter) ([]domain.Repository, error) {
	batches := Batches(a.orgs, orgBatchSize)
	var all []domain.Repository
	var failures []string

	for i, batch := range batches {
		if err := a.guard.Ensure(ctx, len(batch)*2); err != nil {
			return nil, err
		}

		repos, batchFailures := a.fetchBatch(ctx, batch)
		all = append(all, repos...)
		failures = append(failures, batchFailures...)

		if i < len(batches)-1 {
			if err := a.clock.Sleep(ctx, orgBatchDelay); err != nil {
				return nil, err
			}
		}
	}
	a.logger.Printf("Usecase: GSOC search returned %d repositories from %d batches (%d errors).\n",
		len(all), len(batches), len(failures))

	if len(all) == 0 {
		if len(failures) > 0 {
			return nil, userError("No repositories found. Errors: "+strings.Join(failures, ", "), nil)
		}
		return nil, userError(msgNoGSOCRepos, nil)
	}

	if f.Sort.NeedsEnrichment() {
		a.enrich(ctx, all, f.Sort)
	}
	SortRepositories(all, f.Sort)
	return all, nil
}

// fetchBatch searches the organizations of one batch concurrently and joins them
// in batch order.
func (a *Aggregator) fetchBatch(ctx context.Context, batch []string) ([]domain.Repository, []string) {
	results := make([][]domain.Repository, len(batch))
	failures := make([]string, len(batch))

	var eg errgroup.Group
	for i, org := range batch {
		eg.Go(func() error {
			repos, err := a.fetchOrganization(ctx, org)
			if err != nil {
				a.logger.Printf("Error fetching repositories for %s: %v\n", org, err)
				failures[i] = fmt.Sprintf("Error fetching %s: %s", org, err.Error())
				return nil
			}
			results[i] = repos
			return nil
		})
	}
	_ = eg.Wait()

	var repos []domain.Repository
	var errs []string
	for i := range batch {
		repos = append(repos, results[i]...)
		if failures[i] != "" {
			errs = append(errs, failures[i])
		}
	}
	return repos, errs
}

// fetchOrganization searches one organization and keeps only repositories it owns.
func (a *Aggregator) fetchOrganization(ctx context.Context, org string) ([]domain.Repository, error) {
	query := fmt.Sprintf("org:%s %s", org, orgMinStars)
	repos, err := a.fetcher.SearchRepositories(ctx, query, orgPageSize)
	if err != nil {
		var rlErr *gateway.RateLimitedError
		if errors.As(err, &rlErr) {
			if werr := WaitForReset(ctx, a.clock, rlErr.Reset); werr != nil {
				return nil, werr
			}
			return nil, userError(fmt.Sprintf("Rate limit exceeded for %s. Please try again later.", org), err)
		}
		if errors.Is(err, gateway.ErrInvalidResponse) {
			return nil, userError("Invalid response for "+org, err)
		}
		return nil, userError(fmt.Sprintf("Failed to fetch repositories for %s: %s", org, upstreamMessage(err)), err)
	}

	valid := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		// The search API occasionally returns repositories owned by other accounts.
		if !strings.EqualFold(r.Owner.Login, org) {
			a.logger.Printf("  Discarding %s returned for org %s\n", r.FullName, org)
			continue
		}
		details := domain.NewGSOCOrganization(org)
		r.IsGSOCOrg = true
		r.GSOCOrgDetails = &details
		valid = append(valid, r)
	}
	return valid, nil
}

// Batches splits items into consecutive groups of at most size elements.
func Batches(items []string, size int) [][]string {
	if size <= 0 {
		return nil
	}
	batches := make([][]string, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}
	return batches
}

func upstreamMessage(err error) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
