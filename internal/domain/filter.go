// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"strings"
)

// AllOption is the filter value meaning "do not constrain this dimension".
const AllOption = "all"

// SortKey selects the ordering applied to an assembled result list.
type SortKey string

const (
	SortStarsDesc   SortKey = "stars-desc"
	SortStarsAsc    SortKey = "stars-asc"
	SortForksDesc   SortKey = "forks-desc"
	SortForksAsc    SortKey = "forks-asc"
	SortUpdatedDesc SortKey = "updated-desc"
	SortUpdatedAsc  SortKey = "updated-asc"
	SortIssuesDesc  SortKey = "issues-desc"
	SortIssuesAsc   SortKey = "issues-asc"
	SortPRsDesc     SortKey = "prs-desc"
	SortPRsAsc      SortKey = "prs-asc"
	SortCommitsDesc SortKey = "commits-desc"
	SortCommitsAsc  SortKey = "commits-asc"
)

// SortKeys lists every supported key in menu order.
var SortKeys = []SortKey{
	SortStarsDesc, SortStarsAsc,
	SortForksDesc, SortForksAsc,
	SortCommitsDesc, SortCommitsAsc,
	SortIssuesDesc, SortIssuesAsc,
	SortPRsDesc, SortPRsAsc,
	SortUpdatedDesc, SortUpdatedAsc,
}

// ParseSortKey validates s against the supported keys.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortKeys {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Ascending reports whether the key orders smallest first.
func (k SortKey) Ascending() bool {
	return strings.HasSuffix(string(k), "-asc")
}

// NeedsPullRequests reports whether ordering requires the pull-request enrichment pass.
func (k SortKey) NeedsPullRequests() bool {
	return strings.HasPrefix(string(k), "prs-")
}

// NeedsCommits reports whether ordering requires the commit enrichment pass.
func (k SortKey) NeedsCommits() bool {
	return strings.HasPrefix(string(k), "commits-")
}

// NeedsEnrichment is true for keys that cannot be served from search results alone.
func (k SortKey) NeedsEnrichment() bool {
	return k.NeedsPullRequests() || k.NeedsCommits()
}

// Filter is the user's current selection. It is passed by value on every change.
type Filter struct {
	Query    string  `json:"query"`
	Language string  `json:"language"`
	Topic    string  `json:"topic"`
	Sort     SortKey `json:"sort"`
	GSOCOnly bool    `json:"gsoc_only"`
}

// DefaultFilter returns the selection a fresh session starts with.
func DefaultFilter() Filter {
	return Filter{
		Language: AllOption,
		Topic:    AllOption,
		Sort:     SortStarsDesc,
	}
}

// HasLanguage reports whether a concrete language is selected.
func (f Filter) HasLanguage() bool {
	return f.Language != "" && !strings.EqualFold(f.Language, AllOption)
}

// HasTopic reports whether a concrete topic is selected.
func (f Filter) HasTopic() bool {
	return f.Topic != "" && !strings.EqualFold(f.Topic, AllOption)
}
