package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestGraphQLDoRequestShapeAndAuth(t *testing.T) {
	t.Parallel()

	clientHTTP := newTestHTTPClient(func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gql-token" {
			t.Fatalf("Authorization header = %q, want %q", got, "Bearer gql-token")
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["query"] != "query Test($x:Int!){value}" {
			t.Fatalf("query = %v, want exact query", req["query"])
		}
		variables := req["variables"].(map[string]any)
		if variables["x"] != float64(7) {
			t.Fatalf("variables.x = %v, want 7", variables["x"])
		}

		return mustJSONResponse(t, http.StatusOK, map[string]any{
			"data": map[string]any{"value": "ok"},
		}), nil
	})

	cfg := Config{
		Token:      "gql-token",
		HTTPClient: clientHTTP,
		GraphQLURL: "https://api.test/graphql",
	}
	client := newGraphQLClient(cfg, newHTTPSession(cfg))

	envelope, err := client.do(context.Background(), "query Test($x:Int!){value}", map[string]any{"x": 7})
	if err != nil {
		t.Fatalf("do error = %v, want nil", err)
	}
	var out struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(envelope.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if out.Value != "ok" {
		t.Fatalf("out.Value = %q, want ok", out.Value)
	}
}

func TestGraphQLDoWithoutTokenSendsNoAuthHeader(t *testing.T) {
	t.Parallel()

	clientHTTP := newTestHTTPClient(func(r *http.Request) (*http.Response, error) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Fatalf("Authorization header = %q, want empty", got)
		}
		return mustJSONResponse(t, http.StatusOK, map[string]any{"data": nil}), nil
	})

	cfg := Config{HTTPClient: clientHTTP, GraphQLURL: "https://api.test/graphql"}
	client := newGraphQLClient(cfg, newHTTPSession(cfg))
	if _, err := client.do(context.Background(), "query{}", nil); err != nil {
		t.Fatalf("do error = %v, want nil", err)
	}
}

func TestGraphQLDoReturnsErrorsInEnvelope(t *testing.T) {
	t.Parallel()

	clientHTTP := newTestHTTPClient(func(r *http.Request) (*http.Response, error) {
		return mustJSONResponse(t, http.StatusOK, map[string]any{
			"data": map[string]any{"repository": map[string]any{"issue": nil}},
			"errors": []map[string]any{
				{"type": "NOT_FOUND", "message": "Could not resolve to an Issue", "path": []any{"repository", "issue"}},
			},
		}), nil
	})

	cfg := Config{HTTPClient: clientHTTP, GraphQLURL: "https://api.test/graphql"}
	client := newGraphQLClient(cfg, newHTTPSession(cfg))

	envelope, err := client.do(context.Background(), "query{}", nil)
	if err != nil {
		t.Fatalf("do error = %v, want nil", err)
	}
	if len(envelope.Errors) != 1 || envelope.Errors[0].Type != "NOT_FOUND" {
		t.Fatalf("envelope.Errors = %#v, want one NOT_FOUND", envelope.Errors)
	}
	if !hasOnlyNotFoundErrors(envelope.Errors) {
		t.Fatal("hasOnlyNotFoundErrors = false, want true")
	}
}

func TestGraphQLDoStatusError(t *testing.T) {
	t.Parallel()

	clientHTTP := newTestHTTPClient(func(r *http.Request) (*http.Response, error) {
		return textHTTPResponse(http.StatusUnauthorized, `{"message":"Bad credentials"}`), nil
	})

	cfg := Config{HTTPClient: clientHTTP, GraphQLURL: "https://api.test/graphql"}
	client := newGraphQLClient(cfg, newHTTPSession(cfg))

	_, err := client.do(context.Background(), "query{}", nil)
	if err == nil {
		t.Fatal("do error = nil, want status error")
	}
	if code, ok := StatusCode(err); !ok || code != http.StatusUnauthorized {
		t.Fatalf("StatusCode = %d,%v, want 401,true", code, ok)
	}
	if !IsAuthError(err) {
		t.Fatalf("IsAuthError(%v) = false, want true", err)
	}
}

func TestGraphQLDoDecodeError(t *testing.T) {
	t.Parallel()

	clientHTTP := newTestHTTPClient(func(r *http.Request) (*http.Response, error) {
		return textHTTPResponse(http.StatusOK, "{not-json"), nil
	})

	cfg := Config{HTTPClient: clientHTTP, GraphQLURL: "https://api.test/graphql"}
	client := newGraphQLClient(cfg, newHTTPSession(cfg))

	_, err := client.do(context.Background(), "query{}", nil)
	if err == nil {
		t.Fatal("do error = nil, want decode error")
	}
	if !strings.Contains(err.Error(), "decode graphql response") {
		t.Fatalf("error = %q, want decode context", err.Error())
	}
}

func TestPaginatePassesCursorForward(t *testing.T) {
	t.Parallel()

	var cursors []string
	pages := []struct {
		hasNext bool
		end     string
	}{
		{hasNext: true, end: "c1"},
		{hasNext: true, end: "c2"},
		{hasNext: false, end: "c3"},
	}

	err := paginate(context.Background(), func(_ context.Context, pageIndex int, cursor string) (bool, string, error) {
		cursors = append(cursors, cursor)
		return pages[pageIndex].hasNext, pages[pageIndex].end, nil
	})
	if err != nil {
		t.Fatalf("paginate error = %v, want nil", err)
	}
	want := []string{"", "c1", "c2"}
	if strings.Join(cursors, ",") != strings.Join(want, ",") {
		t.Fatalf("cursors = %q, want %q", cursors, want)
	}
}

func TestPaginateGuards(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name    string
		fetch   pageFunc
		wantErr string
	}{
		{
			name: "empty cursor",
			fetch: func(context.Context, int, string) (bool, string, error) {
				return true, "", nil
			},
			wantErr: "empty cursor",
		},
		{
			name: "stalled cursor",
			fetch: func(context.Context, int, string) (bool, string, error) {
				return true, "same", nil
			},
			wantErr: "stalled",
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := paginate(context.Background(), tc.fetch)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("paginate error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestPaginateStopsOnFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	calls := 0
	err := paginate(context.Background(), func(context.Context, int, string) (bool, string, error) {
		calls++
		return false, "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("paginate error = %v, want boom", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestFormatGraphQLErrors(t *testing.T) {
	t.Parallel()

	got := formatGraphQLErrors([]GraphQLError{
		{Type: "FORBIDDEN", Message: "Resource not accessible"},
		{Message: "something else"},
	})
	want := "FORBIDDEN: Resource not accessible; something else"
	if got != want {
		t.Fatalf("formatGraphQLErrors = %q, want %q", got, want)
	}
}
