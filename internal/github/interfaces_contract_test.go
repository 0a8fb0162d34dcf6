package github

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConfigWithDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{}.WithDefaults()

	if cfg.PageSize != DefaultPageSize {
		t.Fatalf("PageSize = %d, want %d", cfg.PageSize, DefaultPageSize)
	}
	if cfg.GraphQLURL != defaultGraphQLURL {
		t.Fatalf("GraphQLURL = %q, want %q", cfg.GraphQLURL, defaultGraphQLURL)
	}
	if cfg.RESTBaseURL != defaultRESTBaseURL {
		t.Fatalf("RESTBaseURL = %q, want %q", cfg.RESTBaseURL, defaultRESTBaseURL)
	}
	if cfg.Logger == nil {
		t.Fatal("Logger = nil, want discard logger")
	}
}

func TestNewFetcherReturnsFetcher(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(Config{})
	if err != nil {
		t.Fatalf("NewFetcher error = %v, want nil", err)
	}
	if fetcher == nil {
		t.Fatal("NewFetcher returned nil fetcher")
	}
}

func TestNewFetcherRejectsPageSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{-1, MaxPageSize + 1} {
		if _, err := NewFetcher(Config{PageSize: size}); err == nil {
			t.Fatalf("NewFetcher(PageSize=%d) error = nil, want error", size)
		}
	}
}

func TestDefaultFetcherReturnsUnsupportedResourceType(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(Config{})
	if err != nil {
		t.Fatalf("NewFetcher error = %v, want nil", err)
	}

	_, err = fetcher.Fetch(context.Background(), Target{Kind: "wiki"})
	if !errors.Is(err, ErrUnsupportedResourceType) {
		t.Fatalf("Fetch error = %v, want ErrUnsupportedResourceType", err)
	}
}

func TestParseResourceKind(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"discussion", "issue", "pullRequest", "commits", "commit"} {
		kind, err := ParseResourceKind(raw)
		if err != nil {
			t.Fatalf("ParseResourceKind(%q) error = %v, want nil", raw, err)
		}
		if string(kind) != raw {
			t.Fatalf("ParseResourceKind(%q) = %q", raw, kind)
		}
	}

	_, err := ParseResourceKind("pull")
	if !errors.Is(err, ErrUnsupportedResourceType) {
		t.Fatalf("ParseResourceKind(pull) error = %v, want ErrUnsupportedResourceType", err)
	}
}

func TestTargetIdentifier(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		target Target
		want   string
	}{
		{target: Target{Kind: KindIssue, Number: 7}, want: "007"},
		{target: Target{Kind: KindDiscussion, Number: 1234}, want: "1234"},
		{target: Target{Kind: KindCommitHistory, Branch: "main"}, want: "main"},
		{target: Target{Kind: KindCommit, SHA: "abc123"}, want: "abc123"},
	}
	for _, tc := range tcs {
		if got := tc.target.Identifier(); got != tc.want {
			t.Fatalf("Identifier(%+v) = %q, want %q", tc.target, got, tc.want)
		}
	}
}

func TestNormalizeTimestampConvertsToUTC(t *testing.T) {
	t.Parallel()

	ts, err := normalizeTimestamp("2024-03-01T10:00:00+02:00")
	if err != nil {
		t.Fatalf("normalizeTimestamp error = %v, want nil", err)
	}
	want := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	if !ts.Equal(want) || ts.Location() != time.UTC {
		t.Fatalf("normalizeTimestamp = %v, want %v", ts, want)
	}

	if _, err := normalizeTimestamp("yesterday"); err == nil || !strings.Contains(err.Error(), "parse timestamp") {
		t.Fatalf("normalizeTimestamp(yesterday) error = %v, want parse error", err)
	}
}

func TestAuthorFallback(t *testing.T) {
	t.Parallel()

	if got := authorLogin(nil); got != MissingAuthor {
		t.Fatalf("authorLogin(nil) = %q, want %q", got, MissingAuthor)
	}
	if got := authorLogin(&actorPayload{Login: "alice"}); got != "alice" {
		t.Fatalf("authorLogin = %q, want alice", got)
	}
	if got := authorName(&gitActorPayload{}); got != MissingAuthor {
		t.Fatalf("authorName(empty) = %q, want %q", got, MissingAuthor)
	}
}
