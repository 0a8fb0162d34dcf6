package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	gh "github.com/johnqtcg/ghdump/internal/github"
)

// Defaults applied when no flag, environment variable or config file sets a value.
const (
	DefaultGraphQLURL = "https://api.github.com/graphql"
	DefaultRESTURL    = "https://api.github.com/"
	DefaultOutputDir  = "docs"
	DefaultDumpType   = string(gh.KindDiscussion)
	DefaultLogLevel   = "info"
)

// Config represents normalized runtime configuration for the CLI.
type Config struct {
	Token      string
	Owner      string
	Repo       string
	URL        string
	Numbers    []string
	Positional []string
	Branch     string
	SHA        string
	GraphQLURL string
	RESTURL    string
	OutputDir  string
	DumpType   string
	PageSize   int
	InputFile  string
	LogLevel   string
	RateLimit  bool
	Help       bool

	// DumpTypeSet is true when the dumptype came from a flag, the
	// environment or a config file rather than the default.
	DumpTypeSet bool
	// Usage is the rendered flag help, printed on argument errors.
	Usage string
	// Source is the config file that was applied, if any.
	Source string
}

// Loader loads configuration from CLI args, environment and config files.
type Loader interface {
	Load(args []string) (Config, error)
}

// Options overrides where the loader looks for its inputs.
type Options struct {
	Getenv  func(string) string
	WorkDir string
	HomeDir string
}

// NewLoader constructs the default configuration loader.
func NewLoader() Loader {
	return NewLoaderWithOptions(Options{})
}

// NewLoaderWithOptions constructs a loader reading from the given sources.
func NewLoaderWithOptions(opts Options) Loader {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.HomeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			opts.HomeDir = home
		}
	}
	return &layeredLoader{opts: opts}
}

type layeredLoader struct {
	opts Options
}

// fileConfig is the yaml config file shape.
type fileConfig struct {
	Token     string `yaml:"token"`
	Owner     string `yaml:"owner"`
	Repo      string `yaml:"repo"`
	API       string `yaml:"api"`
	RESTAPI   string `yaml:"rest_api"`
	OutputDir string `yaml:"output_dir"`
	DumpType  string `yaml:"dumptype"`
	PageSize  int    `yaml:"page_size"`
	LogLevel  string `yaml:"log_level"`
}

type flagValues struct {
	cfg        Config
	configPath string
}

func newCommand(v *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ghdump [flags] [numbers...]",
		Short:         "Dump GitHub discussions, issues, pull requests or commits to markdown",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapError("parse flags", &FlagError{Err: err})
	})

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVarP(&v.cfg.Token, "token", "t", "", "GitHub access token; falls back to GITHUB_TOKEN, then `gh auth token`")
	flags.StringVar(&v.cfg.Owner, "owner", "", "repository owner")
	flags.StringVar(&v.cfg.Repo, "repo", "", "repository name")
	flags.StringVar(&v.cfg.URL, "url", "", "repository or item URL; replaces --owner/--repo")
	flags.StringSliceVarP(&v.cfg.Numbers, "numbers", "n", nil, "item numbers, comma separated, ranges like 1000-1200")
	flags.StringVar(&v.cfg.Branch, "branch", "", "branch for --dumptype commits (default: repository default branch)")
	flags.StringVar(&v.cfg.SHA, "sha", "", "commit sha for --dumptype commit")
	flags.StringVar(&v.cfg.GraphQLURL, "api", DefaultGraphQLURL, "GitHub GraphQL endpoint")
	flags.StringVar(&v.cfg.RESTURL, "rest-api", DefaultRESTURL, "GitHub REST endpoint")
	flags.StringVarP(&v.cfg.OutputDir, "output-dir", "o", DefaultOutputDir, "output directory; files go to <output-dir>/<repo>/")
	flags.StringVar(&v.cfg.DumpType, "dumptype", DefaultDumpType, "discussion, issue, pullRequest, commits or commit (also --dt, -dt)")
	flags.IntVar(&v.cfg.PageSize, "page-size", gh.DefaultPageSize, "comments or commits per request (1-100)")
	flags.StringVar(&v.cfg.InputFile, "input-file", "", "file with more numbers, one group per line")
	flags.StringVar(&v.configPath, "config", "", "yaml config file")
	flags.StringVar(&v.cfg.LogLevel, "log-level", DefaultLogLevel, "debug, info, warn or error")
	flags.BoolVar(&v.cfg.RateLimit, "rate-limit", false, "log the remaining GraphQL quota after the run")
	flags.BoolVarP(&v.cfg.Help, "help", "h", false, "show help")

	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "dt" {
			name = "dumptype"
		}
		return pflag.NormalizedName(name)
	})
	return cmd
}

// rewriteLegacyFlags turns the single-dash -dt spelling into --dumptype.
// pflag would otherwise read it as the shorthand cluster -d -t.
func rewriteLegacyFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		switch {
		case arg == "-dt":
			arg = "--dumptype"
		case strings.HasPrefix(arg, "-dt="):
			arg = "--dumptype=" + strings.TrimPrefix(arg, "-dt=")
		}
		out = append(out, arg)
	}
	return out
}

func (l *layeredLoader) Load(args []string) (Config, error) {
	values := &flagValues{}
	cmd := newCommand(values)
	usage := cmd.UsageString()

	var (
		cfg Config
		ran bool
	)
	cmd.RunE = func(cmd *cobra.Command, positional []string) error {
		ran = true
		var err error
		cfg, err = l.resolve(cmd.Flags(), values, positional)
		return err
	}
	cmd.SetArgs(rewriteLegacyFlags(args))

	err := cmd.Execute()
	if !ran && err == nil {
		// -h stops cobra before RunE.
		cfg = values.cfg
	}
	cfg.Usage = usage
	return cfg, err
}

// resolve layers the config file and environment under the parsed flags and
// validates the result.
func (l *layeredLoader) resolve(flags *pflag.FlagSet, values *flagValues, positional []string) (Config, error) {
	cfg := values.cfg
	cfg.Positional = positional

	file, source, err := l.readFile(values.configPath)
	if err != nil {
		return cfg, WrapError("read file", err)
	}
	cfg.Source = source

	getenv, err := l.envLookup()
	if err != nil {
		return cfg, WrapError("read .env", err)
	}

	// Lowest to highest precedence: file, environment, flags.
	layer := func(name string, dst *string, fromFile, envKey string) {
		if flags.Changed(name) {
			return
		}
		if envKey != "" {
			if v := getenv(envKey); v != "" {
				*dst = v
				return
			}
		}
		if fromFile != "" {
			*dst = fromFile
		}
	}
	layer("token", &cfg.Token, file.Token, "GITHUB_TOKEN")
	layer("owner", &cfg.Owner, file.Owner, "")
	layer("repo", &cfg.Repo, file.Repo, "")
	layer("api", &cfg.GraphQLURL, file.API, "GHDUMP_API")
	layer("rest-api", &cfg.RESTURL, file.RESTAPI, "")
	layer("output-dir", &cfg.OutputDir, file.OutputDir, "GHDUMP_OUTPUT_DIR")
	layer("dumptype", &cfg.DumpType, file.DumpType, "GHDUMP_DUMPTYPE")
	cfg.DumpTypeSet = flags.Changed("dumptype") || getenv("GHDUMP_DUMPTYPE") != "" || file.DumpType != ""
	layer("log-level", &cfg.LogLevel, file.LogLevel, "")

	if !flags.Changed("page-size") {
		if raw := getenv("GHDUMP_PAGE_SIZE"); raw != "" {
			size, err := strconv.Atoi(raw)
			if err != nil {
				return cfg, WrapError("read environment", NewValidationError("page-size", fmt.Sprintf("GHDUMP_PAGE_SIZE %q is not a number", raw)))
			}
			cfg.PageSize = size
		} else if file.PageSize != 0 {
			cfg.PageSize = file.PageSize
		}
	}

	if err := validate(cfg); err != nil {
		return cfg, WrapError("validate flags", err)
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if _, err := gh.ParseResourceKind(cfg.DumpType); err != nil {
		return NewValidationError("dumptype", fmt.Sprintf("%q must be one of discussion, issue, pullRequest, commits, commit", cfg.DumpType))
	}
	if cfg.PageSize < 1 || cfg.PageSize > gh.MaxPageSize {
		return NewValidationError("page-size", fmt.Sprintf("%d must be between 1 and %d", cfg.PageSize, gh.MaxPageSize))
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return NewValidationError("log-level", fmt.Sprintf("%q must be debug, info, warn or error", cfg.LogLevel))
	}
	if cfg.Branch != "" && cfg.SHA != "" {
		return NewConflictError("--branch", "--sha")
	}
	if cfg.Branch != "" && cfg.DumpType != string(gh.KindCommitHistory) {
		return NewConflictError("--branch", "--dumptype "+cfg.DumpType)
	}
	if cfg.SHA != "" && cfg.DumpType != string(gh.KindCommit) {
		return NewConflictError("--sha", "--dumptype "+cfg.DumpType)
	}
	return nil
}

// readFile loads the explicit config file, else the first default location
// that exists. Only an explicit path is required to exist.
func (l *layeredLoader) readFile(explicit string) (fileConfig, string, error) {
	candidates := []string{explicit}
	if explicit == "" {
		candidates = []string{
			filepath.Join(l.opts.WorkDir, ".ghdump.yaml"),
			filepath.Join(l.opts.WorkDir, ".ghdump.yml"),
		}
		if l.opts.HomeDir != "" {
			candidates = append(candidates, filepath.Join(l.opts.HomeDir, ".ghdump", "config.yaml"))
		}
	}

	for _, path := range candidates {
		raw, err := os.ReadFile(path)
		if err != nil {
			if explicit == "" && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fileConfig{}, "", fmt.Errorf("read %s: %w", path, err)
		}

		var file fileConfig
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return fileConfig{}, "", fmt.Errorf("parse %s: %w", path, err)
		}
		return file, path, nil
	}
	return fileConfig{}, "", nil
}

// envLookup reads the process environment first and falls back to a .env
// file in the working directory. The process environment is never modified.
func (l *layeredLoader) envLookup() (func(string) string, error) {
	dotenv, err := godotenv.Read(filepath.Join(l.opts.WorkDir, ".env"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		dotenv = map[string]string{}
	}

	return func(key string) string {
		if v := l.opts.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}, nil
}
