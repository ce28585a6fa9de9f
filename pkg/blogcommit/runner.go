package blogcommit

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/aretw0/blogcommit/pkg/content"
	"github.com/aretw0/blogcommit/pkg/git"
)

// Runner plans and executes batched commits for one repository.
type Runner struct {
	Config Config
	Git    *git.Client
	Out    io.Writer
	Logger *slog.Logger

	// OpenFS returns the file system rooted at the repository top level.
	// Defaults to os.DirFS.
	OpenFS func(root string) fs.FS

	// RepoRoot is the repository top level when the caller already resolved it.
	// When empty, Plan asks git.
	RepoRoot string
}

// NewRunner creates a runner. Progress goes to out; diagnostics go to logger.
func NewRunner(client *git.Client, cfg Config, out io.Writer, logger *slog.Logger) *Runner {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		Config: cfg,
		Git:    client,
		Out:    out,
		Logger: logger,
		OpenFS: os.DirFS,
	}
}

// Run plans and then executes. The plan is returned even when a commit fails,
// so callers can tell how many batches went through.
func (r *Runner) Run(ctx context.Context) (*Plan, error) {
	plan, err := r.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return plan, r.Execute(ctx, plan)
}

// Plan resolves the repository, runs the staged-changes guard, scans and
// groups the pending posts. It never touches the index.
func (r *Runner) Plan(ctx context.Context) (*Plan, error) {
	cfg := r.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rules := cfg.Rules()

	root := r.RepoRoot
	if root == "" {
		resolved, err := r.Git.RepoRoot(ctx)
		if err != nil {
			return nil, err
		}
		root = resolved
	}
	client := r.Git.WithWorkDir(root)

	staged, err := CheckStaged(ctx, client, rules)
	if err != nil {
		return nil, err
	}

	changes, err := client.Status(ctx, rules.Dir())
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("scanned status", "root", rules.Dir(), "entries", len(changes))

	if cfg.IncludeDeletions && cfg.OnlyUntracked {
		r.Logger.Warn("--include-deletions has no effect with --only-untracked: deletions are never untracked")
	}

	fsys := r.OpenFS(root)
	exists := func(p string) bool {
		_, err := fs.Stat(fsys, p)
		return err == nil
	}
	selected, err := rules.Select(changes, cfg.SelectOptions(), exists)
	if err != nil {
		return nil, err
	}

	paths := content.Paths(selected)
	planned := make(map[string]bool, len(selected))
	indexDeleted := make(map[string]bool)
	for _, c := range selected {
		planned[c.Path] = true
		if c.IsStagedDeletion() {
			indexDeleted[c.Path] = true
		}
	}
	for _, p := range staged {
		if len(selected) > 0 && !planned[p] {
			r.Logger.Warn("staged file is not a pending post but will be recorded by the first commit", "path", p)
		}
	}
	slugs := make(map[string]string, len(paths))
	for _, p := range paths {
		slug, err := content.ExtractSlug(fsys, p)
		if err != nil {
			r.Logger.Debug("slug falls back to file name", "path", p, "error", err)
		}
		slugs[p] = slug
	}

	groups, err := Chunk(paths, cfg.EffectiveBatchSize())
	if err != nil {
		return nil, err
	}
	limited, err := Limit(groups, cfg.MaxCommits)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		RepoRoot:         root,
		Rules:            rules,
		Changes:          selected,
		Slugs:            slugs,
		Computed:         len(groups),
		BatchSize:        cfg.EffectiveBatchSize(),
		PerFile:          cfg.PerFile,
		MaxCommits:       cfg.MaxCommits,
		DryRun:           cfg.DryRun,
		IncludeDeletions: cfg.IncludeDeletions,
	}
	for i, group := range limited {
		batchSlugs := make([]string, len(group))
		stage := make([]string, 0, len(group))
		for j, p := range group {
			batchSlugs[j] = slugs[p]
			if !indexDeleted[p] {
				stage = append(stage, p)
			}
		}
		plan.Batches = append(plan.Batches, Batch{
			Index:   i + 1,
			Paths:   group,
			Stage:   stage,
			Slugs:   batchSlugs,
			Message: NewMessage(cfg.SubjectPrefix, cfg.Noun, batchSlugs),
		})
	}
	return plan, nil
}

// Execute prints the plan and, unless it is a dry run, stages and commits each
// batch in order. The first failure stops the run; earlier commits stay.
func (r *Runner) Execute(ctx context.Context, plan *Plan) error {
	noun := r.Config.Noun
	if noun == "" {
		noun = DefaultNoun
	}

	if plan.Empty() {
		fmt.Fprintf(r.Out, "No pending %s changes under %s.\n", noun, plan.Rules.Prefix())
		return nil
	}

	fmt.Fprintf(r.Out, "Found %d %s files to commit.\n", len(plan.Changes), noun)
	if plan.Computed != len(plan.Batches) {
		fmt.Fprintf(r.Out, "Planned commits: %d of %d (max_commits=%d, per_file=%t, batch_size=%d)\n",
			len(plan.Batches), plan.Computed, plan.MaxCommits, plan.PerFile, plan.BatchSize)
	} else {
		fmt.Fprintf(r.Out, "Planned commits: %d (per_file=%t, batch_size=%d)\n",
			len(plan.Batches), plan.PerFile, plan.BatchSize)
	}

	client := r.Git.WithWorkDir(plan.RepoRoot)
	for _, batch := range plan.Batches {
		fmt.Fprintf(r.Out, "\n[%d/%d] %s\n", batch.Index, len(plan.Batches), batch.Message.Subject)

		if plan.DryRun {
			fmt.Fprintln(r.Out, "Files:")
			for _, p := range batch.Paths {
				fmt.Fprintf(r.Out, "- %s\n", p)
			}
			continue
		}

		if len(batch.Stage) > 0 {
			if err := client.Add(ctx, plan.IncludeDeletions, batch.Stage...); err != nil {
				return fmt.Errorf("batch %d: %w", batch.Index, err)
			}
		}
		if err := client.Commit(ctx, batch.Message.Subject, batch.Message.Body); err != nil {
			return fmt.Errorf("batch %d: %w", batch.Index, err)
		}
		plan.committed++
		r.Logger.Debug("committed batch", "index", batch.Index, "files", len(batch.Paths))
	}

	fmt.Fprintln(r.Out, "\nDone.")
	return nil
}
