package github

import (
	"context"
	"encoding/json"
	"fmt"
)

type gitActorPayload struct {
	Name string `json:"name"`
}

type commitPayload struct {
	OID           string           `json:"oid"`
	Message       string           `json:"message"`
	CommittedDate string           `json:"committedDate"`
	URL           string           `json:"url"`
	Author        *gitActorPayload `json:"author"`
}

type refPayload struct {
	Target *struct {
		History *struct {
			TotalCount int             `json:"totalCount"`
			PageInfo   pageInfoPayload `json:"pageInfo"`
			Edges      []*struct {
				Node *commitPayload `json:"node"`
			} `json:"edges"`
		} `json:"history"`
	} `json:"target"`
}

// aggregateHistory walks the history connection of one branch and returns
// the commits in the order GitHub served them.
func (f *fetcher) aggregateHistory(ctx context.Context, target Target) (CommitHistory, error) {
	history := CommitHistory{Branch: target.Branch}
	reportedTotal := 0
	pagesDone := 0

	err := paginate(ctx, func(ctx context.Context, pageIndex int, cursor string) (bool, string, error) {
		raw, err := f.fetchPage(ctx, target, pageIndex, historyCursorVar, cursor)
		if err != nil {
			return false, "", err
		}

		var page refPayload
		if err := json.Unmarshal(raw, &page); err != nil {
			return false, "", f.pageFailure(target, pageIndex, fmt.Errorf("decode commits page: %w", err))
		}
		if page.Target == nil || page.Target.History == nil {
			return false, "", fmt.Errorf("branch %s has no commit history: %w", target.Branch, ErrResourceNotFound)
		}

		for _, edge := range page.Target.History.Edges {
			if edge == nil || edge.Node == nil {
				continue
			}
			commit, err := mapCommit(edge.Node)
			if err != nil {
				return false, "", f.pageFailure(target, pageIndex, err)
			}
			history.Commits = append(history.Commits, commit)
		}

		reportedTotal = page.Target.History.TotalCount
		pagesDone++
		info := page.Target.History.PageInfo
		return info.HasNextPage, info.EndCursor, nil
	})
	if err != nil {
		return CommitHistory{}, f.abandon(target, pagesDone, err)
	}

	if len(history.Commits) != reportedTotal {
		f.log.Warn("commit count differs from reported total",
			"kind", target.Kind, "id", target.Identifier(),
			"aggregated", len(history.Commits), "total", reportedTotal)
	}
	return history, nil
}

// fetchCommit resolves one commit by sha in a single request. An expression
// that resolves to a non-commit object is treated as absent.
func (f *fetcher) fetchCommit(ctx context.Context, target Target) (CommitRecord, error) {
	raw, err := f.fetchPage(ctx, target, 0, "", "")
	if err != nil {
		return CommitRecord{}, err
	}

	var payload commitPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return CommitRecord{}, f.pageFailure(target, 0, fmt.Errorf("decode commit: %w", err))
	}
	if payload.OID == "" {
		return CommitRecord{}, fmt.Errorf("object %s is not a commit: %w", target.SHA, ErrResourceNotFound)
	}

	commit, err := mapCommit(&payload)
	if err != nil {
		return CommitRecord{}, f.pageFailure(target, 0, err)
	}
	return commit, nil
}

func mapCommit(in *commitPayload) (CommitRecord, error) {
	committedAt, err := normalizeTimestamp(in.CommittedDate)
	if err != nil {
		return CommitRecord{}, fmt.Errorf("map commit %s: %w", in.OID, err)
	}
	return CommitRecord{
		OID:         in.OID,
		Message:     in.Message,
		CommittedAt: committedAt,
		Author:      authorName(in.Author),
		URL:         in.URL,
	}, nil
}
