package cli

import (
	"fmt"
	"strconv"

	"github.com/johnqtcg/ghdump/internal/config"
	gh "github.com/johnqtcg/ghdump/internal/github"
	"github.com/johnqtcg/ghdump/internal/parser"
)

// RemoteLocator infers owner and repo from a local git checkout.
type RemoteLocator interface {
	Repository(dir string) (owner, repo string, err error)
}

type gitRemoteLocator struct{}

func (gitRemoteLocator) Repository(dir string) (string, string, error) {
	return parser.RemoteRepository(dir)
}

// Plan is the validated set of items a run dumps. Numbers only apply to
// thread kinds; Branch and SHA only to commit kinds.
type Plan struct {
	Owner   string
	Repo    string
	Kind    gh.ResourceKind
	Numbers []int
	Branch  string
	SHA     string
}

// Targets lists the items named on the command line in argument order.
func (p Plan) Targets() []gh.Target {
	switch p.Kind {
	case gh.KindCommitHistory, gh.KindCommit:
		return []gh.Target{p.target(0)}
	}

	out := make([]gh.Target, 0, len(p.Numbers))
	for _, n := range p.Numbers {
		out = append(out, p.target(n))
	}
	return out
}

func (p Plan) target(number int) gh.Target {
	return gh.Target{
		Owner:  p.Owner,
		Repo:   p.Repo,
		Kind:   p.Kind,
		Number: number,
		Branch: p.Branch,
		SHA:    p.SHA,
	}
}

// ResolvePlan combines --url, --owner/--repo, the local checkout and the
// number arguments into a Plan. Every error is a config.ValidationError or
// config.ConflictError.
func ResolvePlan(cfg config.Config, urlParser parser.URLParser, remote RemoteLocator) (Plan, error) {
	kind, err := gh.ParseResourceKind(cfg.DumpType)
	if err != nil {
		return Plan{}, config.NewValidationError("dumptype", err.Error())
	}

	plan := Plan{
		Owner:  cfg.Owner,
		Repo:   cfg.Repo,
		Kind:   kind,
		Branch: cfg.Branch,
		SHA:    cfg.SHA,
	}
	tokens := make([]string, 0, len(cfg.Numbers)+len(cfg.Positional)+1)
	tokens = append(tokens, cfg.Numbers...)
	tokens = append(tokens, cfg.Positional...)

	if cfg.URL != "" {
		loc, err := urlParser.Parse(cfg.URL)
		if err != nil {
			return Plan{}, config.NewValidationError("url", err.Error())
		}
		plan.Owner, plan.Repo = loc.Owner, loc.Repo

		if loc.Kind != "" {
			if cfg.DumpTypeSet && loc.Kind != kind {
				return Plan{}, config.NewConflictError("--url", "--dumptype "+cfg.DumpType)
			}
			plan.Kind = loc.Kind
			if err := applyLocation(&plan, loc, &tokens); err != nil {
				return Plan{}, err
			}
		}
	}

	if plan.Owner == "" || plan.Repo == "" {
		if plan.Owner != "" || plan.Repo != "" {
			return Plan{}, config.NewValidationError("repo", "--owner and --repo must be given together")
		}
		owner, repo, err := remote.Repository(".")
		if err != nil {
			return Plan{}, config.NewValidationError("repo", fmt.Sprintf("no --url or --owner/--repo given and %v", err))
		}
		plan.Owner, plan.Repo = owner, repo
	}

	numbers, err := parser.ParseNumbers(tokens)
	if err != nil {
		return Plan{}, config.NewValidationError("numbers", err.Error())
	}
	plan.Numbers = numbers

	if plan.Kind.IsThread() {
		if len(plan.Numbers) == 0 && cfg.InputFile == "" {
			return Plan{}, config.NewValidationError("numbers", fmt.Sprintf("at least one number is required for %s", plan.Kind))
		}
		return plan, nil
	}

	if len(plan.Numbers) > 0 {
		return Plan{}, config.NewConflictError("--numbers", "--dumptype "+string(plan.Kind))
	}
	if cfg.InputFile != "" {
		return Plan{}, config.NewConflictError("--input-file", "--dumptype "+string(plan.Kind))
	}
	if plan.Kind == gh.KindCommit && plan.SHA == "" {
		return Plan{}, config.NewValidationError("sha", "--sha is required for --dumptype commit")
	}
	return plan, nil
}

// applyLocation copies the item identifier of an item URL into plan.
func applyLocation(plan *Plan, loc parser.Location, tokens *[]string) error {
	switch loc.Kind {
	case gh.KindCommitHistory:
		if plan.Branch != "" && plan.Branch != loc.Branch {
			return config.NewConflictError("--url", "--branch")
		}
		plan.Branch = loc.Branch
	case gh.KindCommit:
		if plan.SHA != "" && plan.SHA != loc.SHA {
			return config.NewConflictError("--url", "--sha")
		}
		plan.SHA = loc.SHA
	default:
		*tokens = append(*tokens, strconv.Itoa(loc.Number))
	}
	return nil
}
