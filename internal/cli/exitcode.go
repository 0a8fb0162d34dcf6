package cli

import (
	"errors"

	"github.com/johnqtcg/ghdump/internal/config"
	gh "github.com/johnqtcg/ghdump/internal/github"
	"github.com/johnqtcg/ghdump/internal/parser"
)

const (
	// ExitOK indicates all items completed successfully.
	ExitOK = 0
	// ExitRuntime indicates generic runtime failure.
	ExitRuntime = 1
	// ExitInvalidArguments indicates invalid CLI arguments.
	ExitInvalidArguments = 2
	// ExitAuth indicates auth/authz failures.
	ExitAuth = 3
	// ExitItemFailed indicates at least one item could not be dumped.
	ExitItemFailed = 4
)

// ResolveExitCode maps run error state to CLI exit codes.
func ResolveExitCode(err error, failed int) int {
	if failed > 0 {
		return ExitItemFailed
	}
	if err == nil {
		return ExitOK
	}

	if config.IsUsageError(err) {
		return ExitInvalidArguments
	}
	if errors.Is(err, parser.ErrInvalidGitHubURL) ||
		errors.Is(err, parser.ErrInvalidNumber) ||
		errors.Is(err, gh.ErrUnsupportedResourceType) {
		return ExitInvalidArguments
	}

	if gh.IsAuthError(err) {
		return ExitAuth
	}

	return ExitRuntime
}
