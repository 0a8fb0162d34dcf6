package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type statusError struct {
	StatusCode int
	Err        error
}

func (e *statusError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("http status %d: %v", e.StatusCode, e.Err)
}

func (e *statusError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TransportError reports a failed page request: network failure, HTTP status,
// malformed response or a GraphQL error other than NOT_FOUND.
type TransportError struct {
	Kind       ResourceKind
	Identifier string
	Page       int
	Err        error
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("fetch %s %s page %d: %v", e.Kind, e.Identifier, e.Page+1, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsNotFound reports whether err means the requested resource does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound)
}

// StatusCode extracts the wrapped HTTP status code when available.
func StatusCode(err error) (int, bool) {
	var stErr *statusError
	if errors.As(err, &stErr) {
		return stErr.StatusCode, true
	}
	return 0, false
}

// IsRateLimitError reports whether an error is a GitHub rate limit failure.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	var stErr *statusError
	if errors.As(err, &stErr) {
		if stErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		if stErr.StatusCode == http.StatusForbidden && looksLikeRateLimitError(stErr.Err) {
			return true
		}
	}

	return looksLikeRateLimitError(err)
}

// IsAuthError reports whether an error is an authentication or authorization failure.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if IsRateLimitError(err) {
		return false
	}

	if status, ok := StatusCode(err); ok {
		return status == http.StatusUnauthorized || status == http.StatusForbidden
	}

	text := strings.ToLower(err.Error())
	return strings.Contains(text, "status 401") ||
		strings.Contains(text, "status 403") ||
		strings.Contains(text, "unauthorized") ||
		strings.Contains(text, "forbidden")
}

func looksLikeRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	text := strings.ToLower(err.Error())
	return strings.Contains(text, "rate limit")
}
