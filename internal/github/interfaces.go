package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

const (
	// DefaultPageSize is the number of comments or commits requested per page.
	DefaultPageSize = 100
	// MaxPageSize is the largest page GitHub accepts for connections.
	MaxPageSize = 100
)

// ErrUnsupportedResourceType indicates the resource type is unknown to the fetcher dispatcher.
var ErrUnsupportedResourceType = errors.New("unsupported github resource type")

// ErrResourceNotFound indicates the requested GitHub resource does not exist.
var ErrResourceNotFound = errors.New("github resource not found")

// ErrPartialAggregation indicates a later page failed after earlier pages were collected.
// The collected pages are discarded.
var ErrPartialAggregation = errors.New("aggregation abandoned after partial page set")

// Fetcher aggregates GitHub resources into complete records.
type Fetcher interface {
	Fetch(ctx context.Context, target Target) (Record, error)
	DefaultBranch(ctx context.Context, owner, repo string) (string, error)
	RateLimit(ctx context.Context) (RateLimit, error)
}

// Config configures the GitHub fetcher client.
type Config struct {
	Token       string
	HTTPClient  *http.Client
	GraphQLURL  string
	RESTBaseURL string
	PageSize    int
	Logger      *slog.Logger
}

// WithDefaults fills missing optional values with package defaults.
func (c Config) WithDefaults() Config {
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.GraphQLURL == "" {
		c.GraphQLURL = defaultGraphQLURL
	}
	if c.RESTBaseURL == "" {
		c.RESTBaseURL = defaultRESTBaseURL
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// NewFetcher constructs a fetcher instance. All clients share one HTTP session.
func NewFetcher(cfg Config) (Fetcher, error) {
	cfg = cfg.WithDefaults()
	if cfg.PageSize < 1 || cfg.PageSize > MaxPageSize {
		return nil, fmt.Errorf("invalid PageSize %d", cfg.PageSize)
	}

	session := newHTTPSession(cfg)

	restClient, err := newRESTClient(cfg, session)
	if err != nil {
		return nil, fmt.Errorf("create REST client: %w", err)
	}

	return &fetcher{
		cfg:  cfg,
		log:  cfg.Logger,
		gql:  newGraphQLClient(cfg, session),
		repo: newRepositoryClient(cfg, session),
		rest: restClient,
	}, nil
}
