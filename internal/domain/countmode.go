package domain

// CountMode selects how pull-request and commit counts are obtained.
type CountMode string

const (
	// CountModeLink reads the page number of the rel="last" pagination link of a
	// one-item-per-page listing. A listing that fits on one page has no such link
	// and counts as zero.
	CountModeLink CountMode = "link"
	// CountModeGraphQL asks the GraphQL API for exact totalCount values.
	CountModeGraphQL CountMode = "graphql"
)
