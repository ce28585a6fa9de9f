package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/blogcommit/pkg/blogcommit"
	"github.com/aretw0/blogcommit/pkg/core"
	"github.com/aretw0/blogcommit/pkg/git"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type rootOptions struct {
	verbose    bool
	jsonOut    bool
	configPath string

	dryRun           bool
	batchSize        int
	perFile          bool
	includeDeletions bool
	onlyUntracked    bool
	onlyTracked      bool
	maxCommits       int
	root             string
}

// validate checks the flag values on their own, before any git command runs.
func (o *rootOptions) validate() error {
	if o.batchSize <= 0 {
		return core.ErrInvalidBatchSize
	}
	if o.maxCommits < 0 {
		return core.ErrInvalidMaxCommits
	}
	if o.onlyUntracked && o.onlyTracked {
		return core.ErrConflictingSubsets
	}
	return nil
}

// newRootCmd builds the command. A nil executor runs the real git binary.
func newRootCmd(stdout, stderr io.Writer, executor git.Executor) *cobra.Command {
	opts := &rootOptions{}
	var logger *slog.Logger

	cmd := &cobra.Command{
		Use:   "blogcommit",
		Short: "Commit pending blog posts in batches",
		Long: `blogcommit commits pending markdown posts under the content root
(content/blog by default) in batches, one commit per batch.

Each commit subject names the first post's slug ("blog post added - <slug>")
and the body lists every slug in the batch. README.md and any path segment
starting with "_" (e.g. _ops, _templates) are skipped, as are deletions unless
--include-deletions is given.

Files outside the content root must not be staged; the run stops if they are.
Anything already staged under the root (even a skipped README.md or _ops file)
is recorded by the first commit, since a commit takes the whole index.`,
		Example: `  blogcommit --dry-run
  blogcommit --batch-size 40
  blogcommit --per-file --max-commits 5`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return core.InvalidArgument("unexpected arguments: %v", args)
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}

			handlerOpts := &slog.HandlerOptions{
				Level: level,
			}
			logger = slog.New(slog.NewTextHandler(stderr, handlerOpts))
			slog.SetDefault(logger)

			return opts.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client := git.NewClient("", logger, executor)
			root, err := client.RepoRoot(cmd.Context())
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd, root, opts)
			if err != nil {
				return err
			}

			out := stdout
			if opts.jsonOut {
				out = io.Discard
			}

			runner := blogcommit.NewRunner(client.WithWorkDir(root), cfg, out, logger)
			runner.RepoRoot = root
			plan, err := runner.Run(cmd.Context())
			if opts.jsonOut && plan != nil {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(plan.State()); encErr != nil && err == nil {
					err = fmt.Errorf("failed to encode plan: %w", encErr)
				}
			}
			return err
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return core.InvalidArgument("%v", err)
	})
	cmd.SetVersionTemplate("blogcommit version {{.Version}}\n")

	f := cmd.Flags()
	f.BoolVar(&opts.dryRun, "dry-run", false, "Print planned commits without committing")
	f.IntVar(&opts.batchSize, "batch-size", blogcommit.DefaultBatchSize, "Files per commit (must be > 0)")
	f.BoolVar(&opts.perFile, "per-file", false, "Commit one file per commit (slow)")
	f.BoolVar(&opts.includeDeletions, "include-deletions", false, "Also commit deleted posts")
	f.BoolVar(&opts.onlyUntracked, "only-untracked", false, "Only commit files git does not track yet")
	f.BoolVar(&opts.onlyTracked, "only-tracked", false, "Only commit files git already tracks")
	f.IntVar(&opts.maxCommits, "max-commits", 0, "Stop after this many commits (0 = unlimited)")
	f.StringVar(&opts.root, "root", "", "Content root relative to the repository (default content/blog)")
	f.StringVar(&opts.configPath, "config", "", "Config file (default <repo>/"+blogcommit.DefaultConfigFile+" when present)")
	f.BoolVar(&opts.jsonOut, "json", false, "Print the plan as JSON")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	return cmd
}

// loadConfig reads the config file, if any, and applies the flags that were set explicitly.
// Without --config it looks for the default file at the repository root.
func loadConfig(cmd *cobra.Command, root string, opts *rootOptions) (blogcommit.Config, error) {
	cfg := blogcommit.DefaultConfig()

	path := opts.configPath
	if path == "" {
		candidate := filepath.Join(root, blogcommit.DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		loaded, err := blogcommit.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		slog.Debug("loaded config", "path", path)
	}

	changed := cmd.Flags().Changed
	if changed("batch-size") {
		cfg.BatchSize = opts.batchSize
	}
	if changed("per-file") {
		cfg.PerFile = opts.perFile
	}
	if changed("include-deletions") {
		cfg.IncludeDeletions = opts.includeDeletions
	}
	if changed("only-untracked") {
		cfg.OnlyUntracked = opts.onlyUntracked
	}
	if changed("only-tracked") {
		cfg.OnlyTracked = opts.onlyTracked
	}
	if changed("max-commits") {
		cfg.MaxCommits = opts.maxCommits
	}
	if changed("root") {
		cfg.Root = opts.root
	}
	cfg.DryRun = opts.dryRun

	return cfg, nil
}

// run executes the command with args and maps the outcome to an exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, executor git.Executor) int {
	cmd := newRootCmd(stdout, stderr, executor)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	if errors.Is(err, core.ErrInvalidArgument) {
		return exitUsage
	}
	var cerr *git.CommandError
	if errors.As(err, &cerr) && cerr.ExitCode > 0 {
		return cerr.ExitCode
	}
	return exitFailure
}
