package parser

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	gh "github.com/johnqtcg/ghdump/internal/github"
)

// ErrInvalidGitHubURL indicates an input URL is not a supported GitHub URL.
var ErrInvalidGitHubURL = errors.New("invalid GitHub URL")

// Location is what a GitHub URL points at: a repository, optionally narrowed
// to one item. Kind is empty for a bare repository URL.
type Location struct {
	Owner  string
	Repo   string
	Kind   gh.ResourceKind
	Number int
	Branch string
	SHA    string
}

// URLParser parses a raw GitHub URL into a Location.
type URLParser interface {
	Parse(rawURL string) (Location, error)
}

// New creates the default URL parser implementation.
func New() URLParser {
	return &defaultParser{}
}

type defaultParser struct{}

func (p *defaultParser) Parse(rawURL string) (Location, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Location{}, fmt.Errorf("parse URL %q: %w", rawURL, err)
	}

	host := strings.ToLower(parsedURL.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return Location{}, fmt.Errorf("validate URL host %q: %w", host, invalid("unsupported host"))
	}

	segments := splitPathSegments(parsedURL.Path)
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return Location{}, fmt.Errorf("parse URL path %q: %w", parsedURL.Path, invalid("path must start with /{owner}/{repo}"))
	}

	loc := Location{
		Owner: segments[0],
		Repo:  strings.TrimSuffix(segments[1], ".git"),
	}
	if len(segments) < 4 {
		return loc, nil
	}

	if err := narrow(&loc, segments[2], segments[3:]); err != nil {
		return Location{}, fmt.Errorf("parse URL path %q: %w", parsedURL.Path, err)
	}
	return loc, nil
}

var threadSections = map[string]gh.ResourceKind{
	"issues":      gh.KindIssue,
	"pull":        gh.KindPullRequest,
	"discussions": gh.KindDiscussion,
}

// narrow fills the item part of loc from the path after /{owner}/{repo}.
// Unknown sections such as /blob or /actions leave loc as a repository.
func narrow(loc *Location, section string, rest []string) error {
	switch section {
	case "issues", "pull", "discussions":
		number, err := strconv.Atoi(rest[0])
		if err != nil || number <= 0 {
			return fmt.Errorf("validate resource number %q: %w", rest[0], invalid("resource number must be a positive integer"))
		}
		loc.Number = number
		loc.Kind = threadSections[section]
	case "commit":
		loc.Kind = gh.KindCommit
		loc.SHA = rest[0]
	case "tree", "commits":
		loc.Kind = gh.KindCommitHistory
		loc.Branch = strings.Join(rest, "/")
	}
	return nil
}

func splitPathSegments(rawPath string) []string {
	trimmed := strings.Trim(rawPath, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidGitHubURL, reason)
}
