package github

import "fmt"

// Cursor variable names used by the paginated queries.
const (
	commentsCursorVar = "commentsCursor"
	historyCursorVar  = "historyCursor"
)

const discussionQuery = `query DiscussionPage($owner:String!, $repo:String!, $number:Int!, $pageSize:Int!, $commentsCursor:String, $repliesCursor:String) {
  repository(owner:$owner, name:$repo) {
    discussion(number:$number) {
      title
      body
      author { login }
      createdAt
      url
      comments(first:$pageSize, after:$commentsCursor) {
        totalCount
        pageInfo { hasNextPage endCursor }
        nodes {
          id
          body
          author { login }
          createdAt
          replies(first:100, after:$repliesCursor) {
            totalCount
            pageInfo { hasNextPage endCursor }
            nodes {
              id
              body
              author { login }
              createdAt
            }
          }
        }
      }
    }
  }
}`

const issueQuery = `query IssuePage($owner:String!, $repo:String!, $number:Int!, $pageSize:Int!, $commentsCursor:String) {
  repository(owner:$owner, name:$repo) {
    issue(number:$number) {
      title
      body
      author { login }
      createdAt
      state
      url
      comments(first:$pageSize, after:$commentsCursor) {
        totalCount
        pageInfo { hasNextPage endCursor }
        nodes {
          id
          body
          author { login }
          createdAt
        }
      }
    }
  }
}`

const pullRequestQuery = `query PullRequestPage($owner:String!, $repo:String!, $number:Int!, $pageSize:Int!, $commentsCursor:String) {
  repository(owner:$owner, name:$repo) {
    pullRequest(number:$number) {
      title
      body
      author { login }
      createdAt
      state
      url
      comments(first:$pageSize, after:$commentsCursor) {
        totalCount
        pageInfo { hasNextPage endCursor }
        nodes {
          id
          body
          author { login }
          createdAt
        }
      }
    }
  }
}`

const commitHistoryQuery = `query CommitHistoryPage($owner:String!, $repo:String!, $qualifiedName:String!, $pageSize:Int!, $historyCursor:String) {
  repository(owner:$owner, name:$repo) {
    ref(qualifiedName:$qualifiedName) {
      target {
        ... on Commit {
          history(first:$pageSize, after:$historyCursor) {
            totalCount
            pageInfo { hasNextPage endCursor }
            edges {
              node {
                oid
                message
                committedDate
                author { name }
              }
            }
          }
        }
      }
    }
  }
}`

const commitQuery = `query CommitBySha($owner:String!, $repo:String!, $expression:String!) {
  repository(owner:$owner, name:$repo) {
    object(expression:$expression) {
      ... on Commit {
        oid
        message
        committedDate
        url
        author { name }
      }
    }
  }
}`

// queryFor returns the catalog entry for kind and the key of its top-level
// node under repository.
func queryFor(kind ResourceKind) (query, rootField string, err error) {
	switch kind {
	case KindDiscussion:
		return discussionQuery, "discussion", nil
	case KindIssue:
		return issueQuery, "issue", nil
	case KindPullRequest:
		return pullRequestQuery, "pullRequest", nil
	case KindCommitHistory:
		return commitHistoryQuery, "ref", nil
	case KindCommit:
		return commitQuery, "object", nil
	default:
		return "", "", fmt.Errorf("query catalog %q: %w", kind, ErrUnsupportedResourceType)
	}
}

// identifyingVariables returns the fixed variables of target; cursor variables
// are added per page by the caller.
func identifyingVariables(target Target, pageSize int) map[string]any {
	vars := map[string]any{
		"owner": target.Owner,
		"repo":  target.Repo,
	}
	switch target.Kind {
	case KindCommitHistory:
		vars["qualifiedName"] = target.Branch
		vars["pageSize"] = pageSize
	case KindCommit:
		vars["expression"] = target.SHA
	default:
		vars["number"] = target.Number
		vars["pageSize"] = pageSize
	}
	return vars
}
