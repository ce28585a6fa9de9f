package blogcommit_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/blogcommit/pkg/blogcommit"
	"github.com/aretw0/blogcommit/pkg/core"
	"github.com/aretw0/blogcommit/pkg/git"
)

// setupRepo creates an isolated repository with one committed post.
func setupRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, ".gitconfig"))
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	writeFile(t, dir, "content/blog/existing.md", "---\nslug: existing\n---\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "initial")
	return dir
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return string(out)
}

func writeFile(t *testing.T, dir, rel, data string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(data), 0o644))
}

func subjects(t *testing.T, dir string) []string {
	t.Helper()
	out := strings.TrimSpace(runGit(t, dir, "log", "--format=%s"))
	return strings.Split(out, "\n")
}

func TestIntegration_CommitsBatches(t *testing.T) {
	dir := setupRepo(t)

	writeFile(t, dir, "content/blog/guides/shegaon.md", "---\ntitle: Shegaon\nslug: \"shegaon-travel-guide\"\n---\n")
	writeFile(t, dir, "content/blog/welcome.md", "---\nslug: welcome-to-sansthan\n---\n")
	writeFile(t, dir, "content/blog/plain.md", "no metadata")
	writeFile(t, dir, "content/blog/existing.md", "---\nslug: existing\n---\nedited\n")
	writeFile(t, dir, "content/blog/_ops/notes.md", "ops")
	writeFile(t, dir, "content/blog/README.md", "readme")
	writeFile(t, dir, "notes.txt", "unrelated, untracked")

	var out bytes.Buffer
	cfg := blogcommit.NewConfig(blogcommit.WithBatchSize(3))
	runner := blogcommit.NewRunner(git.NewClient(dir, nil, nil), cfg, &out, nil)

	plan, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, plan.Committed())

	require.Equal(t, []string{
		"blog post added - welcome-to-sansthan",
		"blog post added - existing",
		"initial",
	}, subjects(t, dir))

	body := runGit(t, dir, "log", "-1", "--skip=1", "--format=%b")
	require.Contains(t, body, "Committed 3 blog post file(s).")
	require.Contains(t, body, "- shegaon-travel-guide")
	require.Contains(t, body, "- plain")

	status := runGit(t, dir, "status", "--porcelain", "--untracked-files=all")
	require.Contains(t, status, "content/blog/_ops/notes.md")
	require.Contains(t, status, "content/blog/README.md")
	require.Contains(t, status, "notes.txt")
	require.NotContains(t, status, "welcome.md")
}

func TestIntegration_DryRunLeavesRepoUntouched(t *testing.T) {
	dir := setupRepo(t)
	writeFile(t, dir, "content/blog/new.md", "---\nslug: new-post\n---\n")

	var out bytes.Buffer
	cfg := blogcommit.NewConfig(blogcommit.WithDryRun(true))
	runner := blogcommit.NewRunner(git.NewClient(dir, nil, nil), cfg, &out, nil)

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, out.String(), "[1/1] blog post added - new-post")
	require.Equal(t, []string{"initial"}, subjects(t, dir))
	require.Empty(t, strings.TrimSpace(runGit(t, dir, "diff", "--cached", "--name-only")))
}

func TestIntegration_StagedOutsideRoot(t *testing.T) {
	dir := setupRepo(t)
	writeFile(t, dir, "content/blog/new.md", "---\nslug: new-post\n---\n")
	writeFile(t, dir, "package.json", "{}")
	runGit(t, dir, "add", "package.json")

	runner := blogcommit.NewRunner(git.NewClient(dir, nil, nil), blogcommit.NewConfig(), nil, nil)
	_, err := runner.Run(context.Background())
	require.ErrorIs(t, err, core.ErrStagedOutsideRoot)
	require.Contains(t, err.Error(), "- package.json")
	require.Equal(t, []string{"initial"}, subjects(t, dir))
}

func TestIntegration_Deletions(t *testing.T) {
	dir := setupRepo(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "content", "blog", "existing.md")))

	runner := blogcommit.NewRunner(git.NewClient(dir, nil, nil), blogcommit.NewConfig(), nil, nil)
	plan, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.True(t, plan.Empty())

	cfg := blogcommit.NewConfig(blogcommit.WithIncludeDeletions(true))
	runner = blogcommit.NewRunner(git.NewClient(dir, nil, nil), cfg, nil, nil)
	plan, err = runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, plan.Committed())
	require.Equal(t, "blog post added - existing", subjects(t, dir)[0])
	require.Empty(t, strings.TrimSpace(runGit(t, dir, "status", "--porcelain")))
}

func TestIntegration_StagedDeletion(t *testing.T) {
	dir := setupRepo(t)
	runGit(t, dir, "rm", "-q", "content/blog/existing.md")

	cfg := blogcommit.NewConfig(blogcommit.WithIncludeDeletions(true))
	runner := blogcommit.NewRunner(git.NewClient(dir, nil, nil), cfg, nil, nil)
	plan, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, plan.Committed())
	require.Equal(t, "blog post added - existing", subjects(t, dir)[0])
	require.Empty(t, strings.TrimSpace(runGit(t, dir, "status", "--porcelain")))
	require.Empty(t, strings.TrimSpace(runGit(t, dir, "ls-files", "content/blog")))
}

func TestIntegration_DeletionShapes(t *testing.T) {
	existing := filepath.Join("content", "blog", "existing.md")

	tests := []struct {
		name    string
		code    string
		prepare func(t *testing.T, dir string)
	}{
		{
			name: "deleted in worktree",
			code: " D",
			prepare: func(t *testing.T, dir string) {
				require.NoError(t, os.Remove(filepath.Join(dir, existing)))
			},
		},
		{
			name: "deleted in index",
			code: "D ",
			prepare: func(t *testing.T, dir string) {
				runGit(t, dir, "rm", "-q", "content/blog/existing.md")
			},
		},
		{
			name: "modified then deleted",
			code: "MD",
			prepare: func(t *testing.T, dir string) {
				writeFile(t, dir, "content/blog/existing.md", "---\nslug: existing\n---\nedited\n")
				runGit(t, dir, "add", "content/blog/existing.md")
				require.NoError(t, os.Remove(filepath.Join(dir, existing)))
			},
		},
		{
			name: "added then deleted",
			code: "AD",
			prepare: func(t *testing.T, dir string) {
				writeFile(t, dir, "content/blog/draft.md", "---\nslug: draft\n---\n")
				runGit(t, dir, "add", "content/blog/draft.md")
				require.NoError(t, os.Remove(filepath.Join(dir, "content", "blog", "draft.md")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupRepo(t)
			tt.prepare(t, dir)
			// A new post shares the batch, so every shape still yields a non-empty commit.
			writeFile(t, dir, "content/blog/fresh.md", "---\nslug: fresh\n---\n")
			require.Contains(t, runGit(t, dir, "status", "--porcelain"), tt.code+" content/blog/")

			cfg := blogcommit.NewConfig(blogcommit.WithIncludeDeletions(true))
			runner := blogcommit.NewRunner(git.NewClient(dir, nil, nil), cfg, nil, nil)
			plan, err := runner.Run(context.Background())
			require.NoError(t, err)
			require.Equal(t, 1, plan.Committed())
			require.Len(t, subjects(t, dir), 2)
			require.Empty(t, strings.TrimSpace(runGit(t, dir, "status", "--porcelain", "--untracked-files=all")))

			tracked := runGit(t, dir, "ls-files", "content/blog")
			require.Contains(t, tracked, "content/blog/fresh.md")
			require.NotContains(t, tracked, "content/blog/draft.md")
		})
	}
}
