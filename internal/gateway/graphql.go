package gateway

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
)

// pullRequestCountQuery fetches the exact number of pull requests in any state.
type pullRequestCountQuery struct {
	Repository struct {
		PullRequests struct {
			TotalCount int
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// commitCountQuery fetches the length of the default branch history.
// An empty repository has no default branch and yields zero.
type commitCountQuery struct {
	Repository struct {
		DefaultBranchRef struct {
			Target struct {
				Commit struct {
					History struct {
						TotalCount int
					}
				} `graphql:"... on Commit"`
			}
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

func repositoryVariables(owner, repo string) map[string]interface{} {
	return map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
	}
}

func (g *GitHubGateway) countPullRequestsGraphQL(ctx context.Context, owner, repo string) (int, error) {
	var q pullRequestCountQuery
	if err := g.graphqlClient.Query(ctx, &q, repositoryVariables(owner, repo)); err != nil {
		return 0, fmt.Errorf("failed to execute GraphQL query for pull request count of %s/%s: %w", owner, repo, err)
	}
	return q.Repository.PullRequests.TotalCount, nil
}

func (g *GitHubGateway) countCommitsGraphQL(ctx context.Context, owner, repo string) (int, error) {
	var q commitCountQuery
	if err := g.graphqlClient.Query(ctx, &q, repositoryVariables(owner, repo)); err != nil {
		return 0, fmt.Errorf("failed to execute GraphQL query for commit count of %s/%s: %w", owner, repo, err)
	}
	return q.Repository.DefaultBranchRef.Target.Commit.History.TotalCount, nil
}
