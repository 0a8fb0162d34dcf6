// Package credential resolves the GitHub bearer token used for a run.
package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmgilman/go/exec"
)

// ErrNoToken indicates neither an explicit token nor the gh CLI produced one.
var ErrNoToken = errors.New("no GitHub token available")

// Runner executes one external command. *exec.CommandWrapper satisfies it.
type Runner interface {
	Run(args ...string) (*exec.Result, error)
}

// RunnerFactory builds the gh CLI runner bound to ctx.
type RunnerFactory func(ctx context.Context) Runner

// Resolver returns the bearer token for a run.
type Resolver interface {
	Resolve(ctx context.Context, explicit string) (string, error)
}

// NewResolver returns a resolver that falls back to `gh auth token`.
func NewResolver() Resolver {
	return NewResolverWithRunner(func(ctx context.Context) Runner {
		return exec.NewWrapper(exec.New(
			exec.WithContext(ctx),
			exec.WithInheritEnv(),
			exec.WithDisableColors(),
		), "gh")
	})
}

// NewResolverWithRunner returns a resolver using factory for the gh CLI.
func NewResolverWithRunner(factory RunnerFactory) Resolver {
	return &ghResolver{newRunner: factory}
}

type ghResolver struct {
	newRunner RunnerFactory
}

func (r *ghResolver) Resolve(ctx context.Context, explicit string) (string, error) {
	if token := strings.TrimSpace(explicit); token != "" {
		return token, nil
	}

	result, err := r.newRunner(ctx).Run("auth", "token")
	if err != nil {
		var execErr *exec.ExecError
		if errors.As(err, &execErr) && strings.TrimSpace(execErr.Stderr) != "" {
			return "", fmt.Errorf("%w: gh auth token: %s: %w", ErrNoToken, strings.TrimSpace(execErr.Stderr), err)
		}
		return "", fmt.Errorf("%w: gh auth token: %w", ErrNoToken, err)
	}

	token := ""
	if result != nil {
		token = strings.TrimSpace(result.Stdout)
	}
	if token == "" {
		return "", fmt.Errorf("%w: gh auth token printed nothing; run `gh auth login`", ErrNoToken)
	}
	return token, nil
}
