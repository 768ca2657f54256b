package domain

import "time"

// Owner identifies the account a repository belongs to.
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// Repository is a single search result.
// PullRequestCount and CommitCount stay nil unless the active sort key asked for them;
// nil means "not requested", never zero.
type Repository struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	FullName         string            `json:"full_name"`
	Description      string            `json:"description"`
	HTMLURL          string            `json:"html_url"`
	StargazersCount  int               `json:"stargazers_count"`
	ForksCount       int               `json:"forks_count"`
	WatchersCount    int               `json:"watchers_count"`
	OpenIssuesCount  int               `json:"open_issues_count"`
	Language         string            `json:"language"`
	Topics           []string          `json:"topics"`
	Owner            Owner             `json:"owner"`
	PullRequestCount *int              `json:"pull_requests_count,omitempty"`
	CommitCount      *int              `json:"commit_count,omitempty"`
	IsGSOCOrg        bool              `json:"is_gsoc_org"`
	GSOCOrgDetails   *GSOCOrganization `json:"gsoc_org_details,omitempty"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
