package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	gh "github.com/johnqtcg/ghdump/internal/github"
)

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// logRateLimit reports the remaining GraphQL quota. A failed lookup only warns.
func logRateLimit(ctx context.Context, fetcher gh.Fetcher, logger *slog.Logger) {
	limit, err := fetcher.RateLimit(ctx)
	if err != nil {
		logger.Warn("rate limit lookup failed", "error", err)
		return
	}
	logger.Info("graphql rate limit",
		"limit", limit.Limit,
		"remaining", limit.Remaining,
		"reset_at", limit.ResetAt.Format(time.RFC3339))
}
