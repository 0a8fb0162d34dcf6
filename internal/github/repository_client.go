package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shurcooL/graphql"
)

// repositoryClient answers repository-level lookups through the typed
// GraphQL client. Paginated aggregation uses graphQLClient instead because it
// needs the raw errors list.
type repositoryClient struct {
	client *graphql.Client
}

func newRepositoryClient(cfg Config, session *http.Client) *repositoryClient {
	return &repositoryClient{client: graphql.NewClient(cfg.GraphQLURL, session)}
}

type defaultBranchQuery struct {
	Repository *struct {
		DefaultBranchRef *struct {
			Name graphql.String
		}
	} `graphql:"repository(owner: $owner, name: $repo)"`
}

func (c *repositoryClient) defaultBranch(ctx context.Context, owner, repo string) (string, error) {
	var q defaultBranchQuery
	vars := map[string]any{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
	}
	if err := c.client.Query(ctx, &q, vars); err != nil {
		return "", fmt.Errorf("query default branch of %s/%s: %w", owner, repo, err)
	}
	if q.Repository == nil || q.Repository.DefaultBranchRef == nil || q.Repository.DefaultBranchRef.Name == "" {
		return "", fmt.Errorf("default branch of %s/%s: %w", owner, repo, ErrResourceNotFound)
	}
	return string(q.Repository.DefaultBranchRef.Name), nil
}
