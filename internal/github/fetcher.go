package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

type fetcher struct {
	cfg  Config
	log  *slog.Logger
	gql  *graphQLClient
	repo *repositoryClient
	rest *restClient
}

func (f *fetcher) Fetch(ctx context.Context, target Target) (Record, error) {
	switch target.Kind {
	case KindDiscussion, KindIssue, KindPullRequest:
		item, err := f.aggregateThread(ctx, target)
		if err != nil {
			return Record{}, fmt.Errorf("fetch %s %s: %w", target.Kind, target.Identifier(), err)
		}
		return Record{Kind: target.Kind, Thread: &item}, nil
	case KindCommitHistory:
		history, err := f.aggregateHistory(ctx, target)
		if err != nil {
			return Record{}, fmt.Errorf("fetch commits %s: %w", target.Identifier(), err)
		}
		return Record{Kind: target.Kind, History: &history}, nil
	case KindCommit:
		commit, err := f.fetchCommit(ctx, target)
		if err != nil {
			return Record{}, fmt.Errorf("fetch commit %s: %w", target.Identifier(), err)
		}
		return Record{Kind: target.Kind, Commit: &commit}, nil
	default:
		return Record{}, fmt.Errorf("dispatch resource type %q: %w", target.Kind, ErrUnsupportedResourceType)
	}
}

func (f *fetcher) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	return f.repo.defaultBranch(ctx, owner, repo)
}

func (f *fetcher) RateLimit(ctx context.Context) (RateLimit, error) {
	return f.rest.rateLimit(ctx)
}

// abandon turns a pagination failure into the item-level error. Pages already
// collected are dropped; a failure after the first page is additionally
// marked as ErrPartialAggregation.
func (f *fetcher) abandon(target Target, pagesDone int, err error) error {
	var tErr *TransportError
	if !errors.As(err, &tErr) && !IsNotFound(err) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		err = f.pageFailure(target, pagesDone, err)
	}
	if pagesDone == 0 {
		return err
	}
	return fmt.Errorf("%w after %d page(s): %w", ErrPartialAggregation, pagesDone, err)
}
