package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// fetchPage issues one round trip for target and returns the raw top-level
// resource node (repository.<root>). The cursor variable is omitted on the
// first page. A missing node yields ErrResourceNotFound; every other failure
// is logged and returned as a *TransportError.
func (f *fetcher) fetchPage(ctx context.Context, target Target, pageIndex int, cursorVar, cursor string) (json.RawMessage, error) {
	query, rootField, err := queryFor(target.Kind)
	if err != nil {
		return nil, err
	}

	vars := identifyingVariables(target, f.cfg.PageSize)
	if cursorVar != "" && cursor != "" {
		vars[cursorVar] = cursor
	}

	envelope, err := f.gql.do(ctx, query, vars)
	if err != nil {
		return nil, f.pageFailure(target, pageIndex, err)
	}

	node, err := resourceNode(envelope.Data, rootField)
	if err != nil {
		return nil, f.pageFailure(target, pageIndex, err)
	}
	if node != nil {
		if len(envelope.Errors) > 0 {
			f.log.Warn("graphql returned errors alongside data",
				"kind", target.Kind, "id", target.Identifier(), "page", pageIndex+1,
				"errors", formatGraphQLErrors(envelope.Errors))
		}
		return node, nil
	}

	if len(envelope.Errors) > 0 && !hasOnlyNotFoundErrors(envelope.Errors) {
		gqlErr := fmt.Errorf("graphql returned errors: %s", formatGraphQLErrors(envelope.Errors))
		return nil, fmt.Errorf("%s %s: %w: %w", target.Kind, target.Identifier(), ErrResourceNotFound, f.pageFailure(target, pageIndex, gqlErr))
	}
	return nil, fmt.Errorf("%s %s: %w", target.Kind, target.Identifier(), ErrResourceNotFound)
}

func (f *fetcher) pageFailure(target Target, pageIndex int, err error) error {
	f.log.Error("page request failed",
		"kind", target.Kind, "id", target.Identifier(), "page", pageIndex+1, "error", err)
	return &TransportError{
		Kind:       target.Kind,
		Identifier: target.Identifier(),
		Page:       pageIndex,
		Err:        err,
	}
}

// resourceNode extracts data.repository.<rootField>; nil means absent.
func resourceNode(data json.RawMessage, rootField string) (json.RawMessage, error) {
	if isJSONNull(data) {
		return nil, nil
	}

	var payload struct {
		Repository map[string]json.RawMessage `json:"repository"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode graphql data: %w", err)
	}

	node, ok := payload.Repository[rootField]
	if !ok || isJSONNull(node) {
		return nil, nil
	}
	return node, nil
}

func isJSONNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
