package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/johnqtcg/ghdump/internal/config"
	"github.com/johnqtcg/ghdump/internal/converter"
	gh "github.com/johnqtcg/ghdump/internal/github"
	"github.com/johnqtcg/ghdump/internal/parser"
)

type fakeLoader struct {
	cfg     config.Config
	err     error
	gotArgs []string
}

func (f *fakeLoader) Load(args []string) (config.Config, error) {
	f.gotArgs = append([]string(nil), args...)
	if f.err != nil {
		return config.Config{Usage: f.cfg.Usage}, f.err
	}
	return f.cfg, nil
}

type fakeParser struct {
	locByURL map[string]parser.Location
	gotURLs  []string
}

func (f *fakeParser) Parse(rawURL string) (parser.Location, error) {
	f.gotURLs = append(f.gotURLs, rawURL)
	loc, ok := f.locByURL[rawURL]
	if !ok {
		return parser.Location{}, fmt.Errorf("parse %q: %w", rawURL, parser.ErrInvalidGitHubURL)
	}
	return loc, nil
}

type fakeRemote struct {
	owner string
	repo  string
	err   error
	calls int
}

func (f *fakeRemote) Repository(dir string) (string, string, error) {
	_ = dir
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return f.owner, f.repo, nil
}

type fakeCredentials struct {
	token       string
	err         error
	gotExplicit string
}

func (f *fakeCredentials) Resolve(_ context.Context, explicit string) (string, error) {
	f.gotExplicit = explicit
	if f.err != nil {
		return "", f.err
	}
	if explicit != "" {
		return explicit, nil
	}
	return f.token, nil
}

type fakeFetcherFactory struct {
	fetcher *fakeFetcher
	err     error
	gotCfg  config.Config
}

func (f *fakeFetcherFactory) New(cfg config.Config, logger *slog.Logger) (gh.Fetcher, error) {
	_ = logger
	f.gotCfg = cfg
	if f.err != nil {
		return nil, f.err
	}
	return f.fetcher, nil
}

type fakeFetcher struct {
	recByID       map[string]gh.Record
	errByID       map[string]error
	defaultBranch string
	branchErr     error
	rateLimit     gh.RateLimit
	rateLimitErr  error
	gotTargets    []gh.Target
	rateLimitHits int
}

func (f *fakeFetcher) Fetch(_ context.Context, target gh.Target) (gh.Record, error) {
	f.gotTargets = append(f.gotTargets, target)
	id := target.Identifier()
	if err := f.errByID[id]; err != nil {
		return gh.Record{}, err
	}
	rec, ok := f.recByID[id]
	if !ok {
		return gh.Record{}, fmt.Errorf("%s %s: %w", target.Kind, id, gh.ErrResourceNotFound)
	}
	return rec, nil
}

func (f *fakeFetcher) DefaultBranch(_ context.Context, owner, repo string) (string, error) {
	_, _ = owner, repo
	if f.branchErr != nil {
		return "", f.branchErr
	}
	return f.defaultBranch, nil
}

func (f *fakeFetcher) RateLimit(context.Context) (gh.RateLimit, error) {
	f.rateLimitHits++
	return f.rateLimit, f.rateLimitErr
}

type fakeRenderer struct {
	err     error
	gotRecs []gh.Record
}

func (f *fakeRenderer) Render(rec gh.Record) (converter.Document, error) {
	f.gotRecs = append(f.gotRecs, rec)
	if f.err != nil {
		return converter.Document{}, f.err
	}
	switch {
	case rec.Thread != nil:
		return converter.Document{
			FileName: converter.ThreadFileName(rec.Kind, rec.Thread.Number, rec.Thread.Title),
			Content:  []byte(rec.Thread.Title),
		}, nil
	case rec.History != nil:
		return converter.Document{FileName: converter.HistoryFileName(rec.History.Branch), Content: []byte("history")}, nil
	case rec.Commit != nil:
		return converter.Document{FileName: converter.CommitFileName(rec.Commit.OID), Content: []byte(rec.Commit.Message)}, nil
	}
	return converter.Document{}, errors.New("empty record")
}

type fakeOutputWriter struct {
	err     error
	gotDirs []string
	gotDocs []converter.Document
}

func (f *fakeOutputWriter) Write(dir string, doc converter.Document) (string, error) {
	f.gotDirs = append(f.gotDirs, dir)
	f.gotDocs = append(f.gotDocs, doc)
	if f.err != nil {
		return "", f.err
	}
	return dir + "/" + doc.FileName, nil
}

type fakeInputReader struct {
	lines   []string
	err     error
	gotPath string
}

func (f *fakeInputReader) Read(path string, handle func(lineNo int, line string) error) error {
	f.gotPath = path
	if f.err != nil {
		return f.err
	}
	for i, line := range f.lines {
		if err := handle(i+1, line); err != nil {
			return err
		}
	}
	return nil
}

func issueRecord(number int, title string) gh.Record {
	return gh.Record{
		Kind: gh.KindIssue,
		Thread: &gh.ThreadItem{
			Kind:   gh.KindIssue,
			Number: number,
			Title:  title,
		},
	}
}

func baseConfig() config.Config {
	return config.Config{
		Owner:     "octo",
		Repo:      "repo",
		DumpType:  string(gh.KindIssue),
		OutputDir: "docs",
		PageSize:  100,
		LogLevel:  "error",
		Usage:     "Usage:\n  ghdump [flags] [numbers...]\n",
	}
}
