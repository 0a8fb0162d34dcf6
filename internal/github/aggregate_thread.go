package github

import (
	"context"
	"encoding/json"
	"fmt"
)

type threadPayload struct {
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	Author    *actorPayload `json:"author"`
	CreatedAt string        `json:"createdAt"`
	State     string        `json:"state"`
	URL       string        `json:"url"`
	Comments  struct {
		TotalCount int               `json:"totalCount"`
		PageInfo   pageInfoPayload   `json:"pageInfo"`
		Nodes      []*commentPayload `json:"nodes"`
	} `json:"comments"`
}

type commentPayload struct {
	ID        string        `json:"id"`
	Body      string        `json:"body"`
	Author    *actorPayload `json:"author"`
	CreatedAt string        `json:"createdAt"`
	Replies   *struct {
		Nodes []*replyPayload `json:"nodes"`
	} `json:"replies"`
}

type replyPayload struct {
	ID        string        `json:"id"`
	Body      string        `json:"body"`
	Author    *actorPayload `json:"author"`
	CreatedAt string        `json:"createdAt"`
}

// aggregateThread follows the comments cursor of a discussion, issue or pull
// request until the last page and folds every page into one ThreadItem.
// Header fields are read from the first page only. Replies come embedded in
// each comment, at most 100 per comment; their own cursor is never followed.
func (f *fetcher) aggregateThread(ctx context.Context, target Target) (ThreadItem, error) {
	item := ThreadItem{
		Kind:   target.Kind,
		Number: target.Number,
	}
	withReplies := target.Kind == KindDiscussion
	reportedTotal := 0
	pagesDone := 0

	err := paginate(ctx, func(ctx context.Context, pageIndex int, cursor string) (bool, string, error) {
		raw, err := f.fetchPage(ctx, target, pageIndex, commentsCursorVar, cursor)
		if err != nil {
			return false, "", err
		}

		var page threadPayload
		if err := json.Unmarshal(raw, &page); err != nil {
			return false, "", f.pageFailure(target, pageIndex, fmt.Errorf("decode %s page: %w", target.Kind, err))
		}

		if pageIndex == 0 {
			if err := fillThreadHeader(&item, page); err != nil {
				return false, "", f.pageFailure(target, pageIndex, err)
			}
		}

		for _, node := range page.Comments.Nodes {
			if node == nil {
				continue
			}
			comment, err := mapComment(node, withReplies)
			if err != nil {
				return false, "", f.pageFailure(target, pageIndex, fmt.Errorf("map comment %q: %w", node.ID, err))
			}
			item.Comments = append(item.Comments, comment)
		}

		reportedTotal = page.Comments.TotalCount
		pagesDone++
		f.log.Debug("aggregated page",
			"kind", target.Kind, "id", target.Identifier(), "page", pageIndex+1,
			"comments", len(item.Comments), "total", reportedTotal)
		return page.Comments.PageInfo.HasNextPage, page.Comments.PageInfo.EndCursor, nil
	})
	if err != nil {
		return ThreadItem{}, f.abandon(target, pagesDone, err)
	}

	if len(item.Comments) != reportedTotal {
		f.log.Warn("comment count differs from reported total",
			"kind", target.Kind, "id", target.Identifier(),
			"aggregated", len(item.Comments), "total", reportedTotal)
	}
	return item, nil
}

func fillThreadHeader(item *ThreadItem, page threadPayload) error {
	createdAt, err := normalizeTimestamp(page.CreatedAt)
	if err != nil {
		return fmt.Errorf("map %s header: %w", item.Kind, err)
	}

	item.URL = page.URL
	item.Title = page.Title
	item.Body = page.Body
	item.Author = authorLogin(page.Author)
	item.CreatedAt = createdAt
	if item.Kind != KindDiscussion {
		item.State = page.State
	}
	return nil
}

func mapComment(in *commentPayload, withReplies bool) (Comment, error) {
	createdAt, err := normalizeTimestamp(in.CreatedAt)
	if err != nil {
		return Comment{}, err
	}

	out := Comment{
		ID:        in.ID,
		Body:      in.Body,
		Author:    authorLogin(in.Author),
		CreatedAt: createdAt,
	}
	if !withReplies || in.Replies == nil {
		return out, nil
	}

	for _, reply := range in.Replies.Nodes {
		if reply == nil {
			continue
		}
		replyAt, err := normalizeTimestamp(reply.CreatedAt)
		if err != nil {
			return Comment{}, fmt.Errorf("map reply %q: %w", reply.ID, err)
		}
		out.Replies = append(out.Replies, Reply{
			ID:        reply.ID,
			Body:      reply.Body,
			Author:    authorLogin(reply.Author),
			CreatedAt: replyAt,
		})
	}
	return out, nil
}
