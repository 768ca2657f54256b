// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/gregjones/httpcache"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchRateLimit returns the quota of the search resource category.
	FetchRateLimit(ctx context.Context) (domain.RateLimit, error)
	SearchRepositories(ctx context.Context, query string, perPage int) ([]domain.Repository, error)
	CountPullRequests(ctx context.Context, owner, repo string) (int, error)
	CountCommits(ctx context.Context, owner, repo string) (int, error)
}

// Options tune the gateway's transport and counting behavior.
type Options struct {
	CountMode domain.CountMode
	HTTPCache bool
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	countMode     domain.CountMode
	logger        *log.Logger
}

var _ Fetcher = (*GitHubGateway)(nil)

// NewGitHubGateway creates a gateway with the following transport stack:
//  1. httpcache (ETag conditional requests, optional)
//  2. go-github-ratelimit (sleeps through secondary rate limits)
//  3. oauth2 (bearer token)
func NewGitHubGateway(token string, opts Options, logger *log.Logger) (*GitHubGateway, error) {
	var base http.RoundTripper = http.DefaultTransport
	if opts.HTTPCache {
		base = httpcache.NewMemoryCacheTransport()
	}
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(base, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	countMode := opts.CountMode
	if countMode == "" {
		countMode = domain.CountModeLink
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		countMode:     countMode,
		logger:        logger,
	}, nil
}

// FetchRateLimit queries the rate-limit endpoint. The call itself does not consume quota.
func (g *GitHubGateway) FetchRateLimit(ctx context.Context) (domain.RateLimit, error) {
	limits, _, err := g.restClient.RateLimit.Get(ctx)
	if err != nil {
		return domain.RateLimit{}, fmt.Errorf("failed to fetch rate limit: %w", classifyError(err))
	}
	search := limits.GetSearch()
	if search == nil {
		return domain.RateLimit{}, fmt.Errorf("rate limit response has no search category: %w", ErrInvalidResponse)
	}
	return domain.RateLimit{
		Remaining: search.Remaining,
		Reset:     search.Reset.Unix(),
	}, nil
}

// SearchRepositories runs a single page of a repository search sorted by stars, descending.
func (g *GitHubGateway) SearchRepositories(ctx context.Context, query string, perPage int) ([]domain.Repository, error) {
	opts := &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	result, resp, err := g.restClient.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search repositories: %w", classifyError(err))
	}
	logRate(g.logger, resp, query)
	if result == nil || result.Repositories == nil {
		return nil, fmt.Errorf("search result has no items: %w", ErrInvalidResponse)
	}

	repos := make([]domain.Repository, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		repos = append(repos, mapRepository(r))
	}
	return repos, nil
}

// CountPullRequests returns the number of pull requests in any state.
func (g *GitHubGateway) CountPullRequests(ctx context.Context, owner, repo string) (int, error) {
	if g.countMode == domain.CountModeGraphQL {
		return g.countPullRequestsGraphQL(ctx, owner, repo)
	}
	opts := &github.PullRequestListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 1},
	}
	_, resp, err := g.restClient.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to list pull requests for %s/%s: %w", owner, repo, classifyError(err))
	}
	return resp.LastPage, nil
}

// CountCommits returns the number of commits on the default branch.
func (g *GitHubGateway) CountCommits(ctx context.Context, owner, repo string) (int, error) {
	if g.countMode == domain.CountModeGraphQL {
		return g.countCommitsGraphQL(ctx, owner, repo)
	}
	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	}
	_, resp, err := g.restClient.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to list commits for %s/%s: %w", owner, repo, classifyError(err))
	}
	return resp.LastPage, nil
}

// mapRepository converts a go-github Repository using the nil-safe getters only.
func mapRepository(r *github.Repository) domain.Repository {
	topics := make([]string, len(r.Topics))
	copy(topics, r.Topics)

	return domain.Repository{
		ID:              r.GetID(),
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		Description:     r.GetDescription(),
		HTMLURL:         r.GetHTMLURL(),
		StargazersCount: r.GetStargazersCount(),
		ForksCount:      r.GetForksCount(),
		WatchersCount:   r.GetWatchersCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
		Language:        r.GetLanguage(),
		Topics:          topics,
		Owner: domain.Owner{
			Login:     r.GetOwner().GetLogin(),
			AvatarURL: r.GetOwner().GetAvatarURL(),
		},
		UpdatedAt: r.GetUpdatedAt().Time,
	}
}

func logRate(logger *log.Logger, resp *github.Response, query string) {
	if resp == nil {
		return
	}
	logger.Printf("  search %q: rate remaining %d/%d, resets in %s\n",
		query, resp.Rate.Remaining, resp.Rate.Limit, time.Until(resp.Rate.Reset.Time).Round(time.Second))
}
