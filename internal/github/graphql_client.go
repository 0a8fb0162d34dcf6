package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

const defaultGraphQLURL = "https://api.github.com/graphql"

type graphQLClient struct {
	httpClient *http.Client
	endpoint   string
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GraphQLError is one entry of a GraphQL response's errors list.
type GraphQLError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Path    []any  `json:"path"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// newHTTPSession builds the one HTTP client shared by every request of a run.
func newHTTPSession(cfg Config) *http.Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Token == "" {
		return httpClient
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	baseTransport := httpClient.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: ts,
			Base:   baseTransport,
		},
		Timeout: httpClient.Timeout,
	}
}

func newGraphQLClient(cfg Config, session *http.Client) *graphQLClient {
	return &graphQLClient{
		httpClient: session,
		endpoint:   cfg.GraphQLURL,
	}
}

// do executes one GraphQL round trip. GraphQL-level errors are returned in the
// envelope, not as an error; only transport and decode failures are errors.
func (c *graphQLClient) do(ctx context.Context, query string, variables map[string]any) (graphQLResponse, error) {
	payload := graphQLRequest{
		Query:     query,
		Variables: variables,
	}
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return graphQLResponse{}, fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return graphQLResponse{}, fmt.Errorf("create graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return graphQLResponse{}, fmt.Errorf("execute graphql request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
		return graphQLResponse{}, fmt.Errorf("graphql status error: %w", &statusError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(body))),
		})
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return graphQLResponse{}, fmt.Errorf("decode graphql response: %w", err)
	}
	return envelope, nil
}

// pageFunc fetches one page starting after cursor ("" for the first page).
type pageFunc func(ctx context.Context, pageIndex int, cursor string) (hasNext bool, endCursor string, err error)

// paginate drives fetch until hasNext is false. It never retries; the first
// error ends the loop. There is no page limit: a server that keeps answering
// hasNextPage must advance the cursor on every page.
func paginate(ctx context.Context, fetch pageFunc) error {
	cursor := ""
	for pageIndex := 0; ; pageIndex++ {
		hasNext, endCursor, err := fetch(ctx, pageIndex, cursor)
		if err != nil {
			return err
		}
		if !hasNext {
			return nil
		}
		if endCursor == "" {
			return fmt.Errorf("graphql pagination returned empty cursor while hasNextPage=true")
		}
		if endCursor == cursor {
			return fmt.Errorf("graphql pagination cursor stalled at %q", endCursor)
		}
		cursor = endCursor
	}
}

func formatGraphQLErrors(errs []GraphQLError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Type != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", e.Type, e.Message))
			continue
		}
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, "; ")
}

func hasOnlyNotFoundErrors(errs []GraphQLError) bool {
	for _, e := range errs {
		if e.Type != "NOT_FOUND" {
			return false
		}
	}
	return true
}
