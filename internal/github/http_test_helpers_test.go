package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestHTTPClient(fn roundTripFunc) *http.Client {
	return &http.Client{
		Transport: fn,
	}
}

func jsonHTTPResponse(statusCode int, payload any) (*http.Response, error) {
	buf := bytes.NewBuffer(nil)
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return nil, err
	}
	return &http.Response{
		StatusCode: statusCode,
		Header: http.Header{
			"Content-Type": []string{"application/json"},
		},
		Body: io.NopCloser(buf),
	}, nil
}

func textHTTPResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func mustJSONResponse(t *testing.T, statusCode int, payload any) *http.Response {
	t.Helper()
	resp, err := jsonHTTPResponse(statusCode, payload)
	if err != nil {
		t.Fatalf("build json response: %v", err)
	}
	return resp
}

func notFoundResponse(path string) *http.Response {
	return textHTTPResponse(http.StatusNotFound, fmt.Sprintf(`{"message":"not found: %s"}`, path))
}

// repositoryResponse wraps node as data.repository.<root> of a GraphQL reply.
// A nil node is encoded as JSON null.
func repositoryResponse(t *testing.T, root string, node any, errs ...GraphQLError) *http.Response {
	t.Helper()

	payload := map[string]any{
		"data": map[string]any{"repository": map[string]any{root: node}},
	}
	if len(errs) > 0 {
		payload["errors"] = errs
	}
	return mustJSONResponse(t, http.StatusOK, payload)
}

type gqlCall struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// newFakeGraphQL records every GraphQL request and answers it with handle,
// which receives the zero-based call index.
func newFakeGraphQL(t *testing.T, handle func(index int, call gqlCall) *http.Response) (*http.Client, *[]gqlCall) {
	t.Helper()

	calls := &[]gqlCall{}
	client := newTestHTTPClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/graphql" {
			return notFoundResponse(r.URL.Path), nil
		}
		var call gqlCall
		if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
			t.Fatalf("decode graphql request: %v", err)
		}
		index := len(*calls)
		*calls = append(*calls, call)
		return handle(index, call), nil
	})
	return client, calls
}

