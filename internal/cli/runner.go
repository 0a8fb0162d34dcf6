package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnqtcg/ghdump/internal/config"
	"github.com/johnqtcg/ghdump/internal/converter"
	"github.com/johnqtcg/ghdump/internal/credential"
	gh "github.com/johnqtcg/ghdump/internal/github"
	"github.com/johnqtcg/ghdump/internal/parser"
)

// Runner executes the CLI application flow.
type Runner interface {
	Run(ctx context.Context, args []string) int
}

// FetcherFactory creates GitHub fetcher instances from runtime config.
type FetcherFactory interface {
	New(cfg config.Config, logger *slog.Logger) (gh.Fetcher, error)
}

// AppDeps defines dependencies for CLI app construction.
type AppDeps struct {
	Loader         config.Loader
	Parser         parser.URLParser
	Remote         RemoteLocator
	Credentials    credential.Resolver
	FetcherFactory FetcherFactory
	Renderer       converter.Renderer
	Writer         OutputWriter
	InputReader    InputReader
	Stdout         io.Writer
	Stderr         io.Writer
}

// App resolves the items of a run and dumps them one at a time.
type App struct {
	loader         config.Loader
	parser         parser.URLParser
	remote         RemoteLocator
	credentials    credential.Resolver
	fetcherFactory FetcherFactory
	renderer       converter.Renderer
	writer         OutputWriter
	inputReader    InputReader
	stdout         io.Writer
	stderr         io.Writer
}

// NewApp creates a CLI runner with injected dependencies.
func NewApp(deps AppDeps) Runner {
	app := &App{
		loader:         deps.Loader,
		parser:         deps.Parser,
		remote:         deps.Remote,
		credentials:    deps.Credentials,
		fetcherFactory: deps.FetcherFactory,
		renderer:       deps.Renderer,
		writer:         deps.Writer,
		inputReader:    deps.InputReader,
		stdout:         deps.Stdout,
		stderr:         deps.Stderr,
	}
	app.setDefaults()
	return app
}

func (a *App) setDefaults() {
	if a.loader == nil {
		a.loader = config.NewLoader()
	}
	if a.parser == nil {
		a.parser = parser.New()
	}
	if a.remote == nil {
		a.remote = gitRemoteLocator{}
	}
	if a.credentials == nil {
		a.credentials = credential.NewResolver()
	}
	if a.fetcherFactory == nil {
		a.fetcherFactory = defaultFetcherFactory{}
	}
	if a.renderer == nil {
		a.renderer = converter.NewRenderer()
	}
	if a.writer == nil {
		a.writer = NewOutputWriter()
	}
	if a.inputReader == nil {
		a.inputReader = NewFileInputReader()
	}
	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
}

// Run executes the CLI workflow and returns an exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	cfg, err := a.loader.Load(args)
	if err != nil {
		writeErrorLine(a.stderr, err)
		if config.IsUsageError(err) {
			writeUsage(a.stderr, cfg.Usage)
		}
		return ResolveExitCode(err, 0)
	}
	if cfg.Help {
		writeUsage(a.stdout, cfg.Usage)
		return ExitOK
	}

	logger, err := newLogger(a.stderr, cfg.LogLevel)
	if err != nil {
		writeErrorLine(a.stderr, err)
		return ExitInvalidArguments
	}

	plan, err := ResolvePlan(cfg, a.parser, a.remote)
	if err != nil {
		writeErrorLine(a.stderr, err)
		writeUsage(a.stderr, cfg.Usage)
		return ResolveExitCode(err, 0)
	}

	token, err := a.credentials.Resolve(ctx, cfg.Token)
	if err != nil {
		writeErrorLine(a.stderr, fmt.Errorf("resolve token: %w", err))
		writeUsage(a.stderr, cfg.Usage)
		return ExitRuntime
	}
	cfg.Token = token

	fetcher, err := a.fetcherFactory.New(cfg, logger)
	if err != nil {
		writeErrorLine(a.stderr, fmt.Errorf("build fetcher: %w", err))
		return ExitRuntime
	}

	if plan.Kind == gh.KindCommitHistory && plan.Branch == "" {
		branch, err := fetcher.DefaultBranch(ctx, plan.Owner, plan.Repo)
		if err != nil {
			runErr := fmt.Errorf("resolve default branch of %s/%s: %w", plan.Owner, plan.Repo, err)
			writeErrorLine(a.stderr, runErr)
			return ResolveExitCode(runErr, 0)
		}
		logger.Info("using default branch", "owner", plan.Owner, "repo", plan.Repo, "branch", branch)
		plan.Branch = branch
	}

	outputDir := filepath.Join(cfg.OutputDir, plan.Repo)
	summary, runErr := a.runItems(ctx, plan, cfg.InputFile, outputDir, fetcher, logger)
	if runErr != nil {
		writeErrorLine(a.stderr, runErr)
	}
	if _, writeErr := fmt.Fprintln(a.stdout, FormatSummary(summary)); writeErr != nil {
		writeErrorLine(a.stderr, fmt.Errorf("write summary output: %w", writeErr))
	}

	if cfg.RateLimit {
		logRateLimit(ctx, fetcher, logger)
	}
	return ResolveExitCode(runErr, summary.Failed)
}

// runItems dumps the planned targets, then every number of the input file, in
// order. A failing item is recorded and the run continues.
func (a *App) runItems(ctx context.Context, plan Plan, inputFile, dir string, fetcher gh.Fetcher, logger *slog.Logger) (RunSummary, error) {
	var items []ItemResult
	record := func(item ItemResult) {
		items = append(items, item)
		writeStatusLine(a.stdout, item)
	}
	process := func(target gh.Target) {
		item, err := a.processOne(ctx, dir, target, fetcher)
		if err != nil {
			item.Status = StatusFailed
			item.Reason = err.Error()
			logItemFailure(logger, target, err)
		}
		record(item)
	}

	for _, target := range plan.Targets() {
		process(target)
	}
	if inputFile == "" {
		return BuildSummary(items), nil
	}

	err := a.inputReader.Read(inputFile, func(lineNo int, line string) error {
		numbers, parseErr := parser.ParseNumbers(strings.Fields(strings.ReplaceAll(line, ",", " ")))
		if parseErr != nil {
			logger.Warn("skipping input line", "line", lineNo, "error", parseErr)
			record(ItemResult{
				Kind:   plan.Kind,
				ID:     fmt.Sprintf("line%d", lineNo),
				Status: StatusFailed,
				Reason: parseErr.Error(),
			})
			return nil
		}
		for _, n := range numbers {
			process(plan.target(n))
		}
		return nil
	})
	if err != nil {
		return BuildSummary(items), fmt.Errorf("read input file %q: %w", inputFile, err)
	}
	return BuildSummary(items), nil
}

// processOne fetches, renders and writes one target. Nothing is written unless
// the whole record was aggregated.
func (a *App) processOne(ctx context.Context, dir string, target gh.Target, fetcher gh.Fetcher) (ItemResult, error) {
	item := ItemResult{
		Kind:   target.Kind,
		ID:     target.Identifier(),
		Status: StatusFailed,
	}

	rec, err := fetcher.Fetch(ctx, target)
	if err != nil {
		return item, fmt.Errorf("fetch resource: %w", err)
	}

	doc, err := a.renderer.Render(rec)
	if err != nil {
		return item, fmt.Errorf("render markdown: %w", err)
	}

	outputPath, err := a.writer.Write(dir, doc)
	if err != nil {
		return item, fmt.Errorf("write output: %w", err)
	}

	item.Status = StatusOK
	item.OutputPath = outputPath
	return item, nil
}

// logItemFailure logs a failed item once. Transport failures were already
// logged with their page by the fetcher.
func logItemFailure(logger *slog.Logger, target gh.Target, err error) {
	var tErr *gh.TransportError
	if errors.As(err, &tErr) {
		return
	}
	if gh.IsNotFound(err) {
		logger.Warn("item not found", "kind", target.Kind, "id", target.Identifier(), "error", err)
		return
	}
	logger.Error("item failed", "kind", target.Kind, "id", target.Identifier(), "error", err)
}

type defaultFetcherFactory struct{}

func (f defaultFetcherFactory) New(cfg config.Config, logger *slog.Logger) (gh.Fetcher, error) {
	_ = f
	fetcher, err := gh.NewFetcher(gh.Config{
		Token:       cfg.Token,
		GraphQLURL:  cfg.GraphQLURL,
		RESTBaseURL: cfg.RESTURL,
		PageSize:    cfg.PageSize,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}
	return fetcher, nil
}
