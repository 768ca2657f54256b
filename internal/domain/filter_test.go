package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	for _, k := range SortKeys {
		got, err := ParseSortKey(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseSortKey("  Stars-DESC ")
	require.NoError(t, err)
	assert.Equal(t, SortStarsDesc, got)

	_, err = ParseSortKey("stars")
	assert.Error(t, err)
}

func TestSortKey_Predicates(t *testing.T) {
	testCases := []struct {
		key       SortKey
		ascending bool
		prs       bool
		commits   bool
	}{
		{key: SortStarsDesc},
		{key: SortForksAsc, ascending: true},
		{key: SortUpdatedAsc, ascending: true},
		{key: SortIssuesDesc},
		{key: SortPRsDesc, prs: true},
		{key: SortPRsAsc, ascending: true, prs: true},
		{key: SortCommitsDesc, commits: true},
		{key: SortCommitsAsc, ascending: true, commits: true},
	}
	for _, tc := range testCases {
		t.Run(string(tc.key), func(t *testing.T) {
			assert.Equal(t, tc.ascending, tc.key.Ascending())
			assert.Equal(t, tc.prs, tc.key.NeedsPullRequests())
			assert.Equal(t, tc.commits, tc.key.NeedsCommits())
			assert.Equal(t, tc.prs || tc.commits, tc.key.NeedsEnrichment())
		})
	}
}

func TestFilter_Selections(t *testing.T) {
	f := DefaultFilter()
	assert.False(t, f.HasLanguage())
	assert.False(t, f.HasTopic())

	f.Language, f.Topic = "Go", "ALL"
	assert.True(t, f.HasLanguage())
	assert.False(t, f.HasTopic())

	f.Language, f.Topic = "", "devops"
	assert.False(t, f.HasLanguage())
	assert.True(t, f.HasTopic())
}

func TestGSOCOrganizations(t *testing.T) {
	orgs := GSOCOrganizations()
	require.Len(t, orgs, 25)
	assert.Equal(t, "apache", orgs[0].Name)
	assert.Equal(t, "tensorflow", orgs[24].Name)
	for _, o := range orgs {
		assert.Empty(t, o.Description)
		assert.Empty(t, o.Website)
		assert.Empty(t, o.Technologies)
	}

	handles := GSOCHandles()
	handles[0] = "mutated"
	assert.Equal(t, "apache", GSOCHandles()[0])
}
