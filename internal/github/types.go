package github

import (
	"fmt"
	"time"
)

// ResourceKind identifies which GitHub entity a dump target refers to.
type ResourceKind string

const (
	// KindDiscussion is a repository discussion.
	KindDiscussion ResourceKind = "discussion"
	// KindIssue is a repository issue.
	KindIssue ResourceKind = "issue"
	// KindPullRequest is a repository pull request.
	KindPullRequest ResourceKind = "pullRequest"
	// KindCommitHistory is the commit history of one branch.
	KindCommitHistory ResourceKind = "commits"
	// KindCommit is a single commit addressed by sha.
	KindCommit ResourceKind = "commit"
)

// MissingAuthor replaces absent or deleted authors in aggregated records.
const MissingAuthor = "None"

// ParseResourceKind validates a dumptype tag.
func ParseResourceKind(raw string) (ResourceKind, error) {
	kind := ResourceKind(raw)
	switch kind {
	case KindDiscussion, KindIssue, KindPullRequest, KindCommitHistory, KindCommit:
		return kind, nil
	default:
		return "", fmt.Errorf("parse dumptype %q: %w", raw, ErrUnsupportedResourceType)
	}
}

// IsThread reports whether the kind owns a comment thread.
func (k ResourceKind) IsThread() bool {
	return k == KindDiscussion || k == KindIssue || k == KindPullRequest
}

// Target is the resolved identity of one item to dump.
type Target struct {
	Owner  string
	Repo   string
	Kind   ResourceKind
	Number int
	Branch string
	SHA    string
}

// Identifier returns the kind-specific identifier used in logs and status lines.
func (t Target) Identifier() string {
	switch t.Kind {
	case KindCommitHistory:
		return t.Branch
	case KindCommit:
		return t.SHA
	default:
		return fmt.Sprintf("%03d", t.Number)
	}
}

// Reply is one reply nested under a discussion comment.
type Reply struct {
	ID        string
	Body      string
	Author    string
	CreatedAt time.Time
}

// Comment is one top-level comment of a thread item.
type Comment struct {
	ID        string
	Body      string
	Author    string
	CreatedAt time.Time
	Replies   []Reply
}

// ThreadItem is a fully aggregated discussion, issue or pull request.
type ThreadItem struct {
	URL       string
	Kind      ResourceKind
	Number    int
	State     string
	Title     string
	Body      string
	Author    string
	CreatedAt time.Time
	Comments  []Comment
}

// CommitRecord is one commit. URL is only populated for commits fetched by sha.
type CommitRecord struct {
	OID         string
	Message     string
	CommittedAt time.Time
	Author      string
	URL         string
}

// CommitHistory is the commit list of one branch in fetch order.
type CommitHistory struct {
	Branch  string
	Commits []CommitRecord
}

// Record is the aggregation result for one target. Exactly one payload is set.
type Record struct {
	Kind    ResourceKind
	Thread  *ThreadItem
	Commit  *CommitRecord
	History *CommitHistory
}

// RateLimit is a snapshot of the GraphQL quota.
type RateLimit struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

func normalizeTimestamp(raw string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return ts.UTC(), nil
}

type actorPayload struct {
	Login string `json:"login"`
}

func authorLogin(in *actorPayload) string {
	if in == nil || in.Login == "" {
		return MissingAuthor
	}
	return in.Login
}

func authorName(in *gitActorPayload) string {
	if in == nil || in.Name == "" {
		return MissingAuthor
	}
	return in.Name
}

type pageInfoPayload struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}
