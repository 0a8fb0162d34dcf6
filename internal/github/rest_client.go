package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	goGithub "github.com/google/go-github/v72/github"
)

const defaultRESTBaseURL = "https://api.github.com/"

type restClient struct {
	client *goGithub.Client
}

func newRESTClient(cfg Config, session *http.Client) (*restClient, error) {
	client := goGithub.NewClient(session)

	baseURL := cfg.RESTBaseURL
	if baseURL == "" {
		baseURL = defaultRESTBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse REST base URL %q: %w", baseURL, err)
	}
	// go-github resolves endpoints relative to BaseURL and requires the slash.
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	client.BaseURL = parsed

	return &restClient{client: client}, nil
}

// rateLimit reports the GraphQL quota of the session's token.
func (c *restClient) rateLimit(ctx context.Context) (RateLimit, error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return RateLimit{}, wrapRESTError("get rate limit", err)
	}
	if limits == nil || limits.GraphQL == nil {
		return RateLimit{}, fmt.Errorf("get rate limit: response has no graphql quota")
	}

	return RateLimit{
		Limit:     limits.GraphQL.Limit,
		Remaining: limits.GraphQL.Remaining,
		ResetAt:   limits.GraphQL.Reset.Time.UTC(),
	}, nil
}

func wrapRESTError(op string, err error) error {
	if err == nil {
		return nil
	}

	var respErr *goGithub.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return fmt.Errorf("%s: %w", op, &statusError{
			StatusCode: respErr.Response.StatusCode,
			Err:        err,
		})
	}

	return fmt.Errorf("%s: %w", op, err)
}
