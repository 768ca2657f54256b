package usecase

import (
	"sort"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
)

// SortRepositories orders repos in place by key. Equal keys keep arrival order.
// Enrichment keys treat a missing count as zero.
func SortRepositories(repos []domain.Repository, key domain.SortKey) {
	metric := sortMetric(key)
	if metric == nil {
		return
	}
	asc := key.Ascending()
	sort.SliceStable(repos, func(i, j int) bool {
		if asc {
			return metric(repos[i]) < metric(repos[j])
		}
		return metric(repos[i]) > metric(repos[j])
	})
}

func sortMetric(key domain.SortKey) func(domain.Repository) int64 {
	switch key {
	case domain.SortStarsDesc, domain.SortStarsAsc:
		return func(r domain.Repository) int64 { return int64(r.StargazersCount) }
	case domain.SortForksDesc, domain.SortForksAsc:
		return func(r domain.Repository) int64 { return int64(r.ForksCount) }
	case domain.SortIssuesDesc, domain.SortIssuesAsc:
		return func(r domain.Repository) int64 { return int64(r.OpenIssuesCount) }
	case domain.SortUpdatedDesc, domain.SortUpdatedAsc:
		return func(r domain.Repository) int64 { return r.UpdatedAt.UnixMilli() }
	case domain.SortPRsDesc, domain.SortPRsAsc:
		return func(r domain.Repository) int64 { return int64(deref(r.PullRequestCount)) }
	case domain.SortCommitsDesc, domain.SortCommitsAsc:
		return func(r domain.Repository) int64 { return int64(deref(r.CommitCount)) }
	}
	return nil
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
