package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/aretw0/blogcommit/pkg/core"
)

// Result is the captured outcome of one command invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs a command in dir and captures its output.
// A non-zero exit is reported through Result.ExitCode, not through the error;
// the error is reserved for commands that could not be run at all.
type Executor func(ctx context.Context, dir, name string, args ...string) (Result, error)

// ExecCommand is the Executor backed by os/exec.
func ExecCommand(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, err
}

// CommandError describes a git invocation that exited with a non-zero status.
type CommandError struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *CommandError) Error() string {
	sub := ""
	if len(e.Args) > 0 {
		sub = e.Args[0]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "git %s failed (exit %d)\nCommand: git %s", sub, e.ExitCode, strings.Join(e.Args, " "))
	if out := strings.TrimSpace(e.Stdout); out != "" {
		fmt.Fprintf(&sb, "\nStdout: %s", out)
	}
	if out := strings.TrimSpace(e.Stderr); out != "" {
		fmt.Fprintf(&sb, "\nStderr: %s", out)
	}
	return sb.String()
}

// Client wraps git command execution for a single working directory.
type Client struct {
	WorkDir string
	Logger  *slog.Logger
	exec    Executor
}

// NewClient creates a new git client for the given working directory.
// A nil executor falls back to ExecCommand.
func NewClient(workDir string, logger *slog.Logger, executor Executor) *Client {
	if executor == nil {
		executor = ExecCommand
	}
	return &Client{
		WorkDir: workDir,
		Logger:  logger,
		exec:    executor,
	}
}

// WithWorkDir returns a copy of the client bound to another directory.
func (c *Client) WithWorkDir(dir string) *Client {
	cp := *c
	cp.WorkDir = dir
	return &cp
}

// Run executes a raw git command in the working directory and returns its stdout untouched.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	res, err := c.exec(ctx, c.WorkDir, "git", args...)
	if err != nil {
		return res.Stdout, fmt.Errorf("git %s: %w", args[0], err)
	}
	if res.ExitCode != 0 {
		return res.Stdout, &CommandError{
			Args:     append([]string(nil), args...),
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}
	return res.Stdout, nil
}

// RepoRoot returns the absolute path of the top-level working directory.
func (c *Client) RepoRoot(ctx context.Context) (string, error) {
	out, err := c.Run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	root := strings.TrimSpace(out)
	if root == "" {
		return "", core.ErrNotARepository
	}
	return root, nil
}

// Status returns the changes under pathspec, untracked files included, parsed from
// the NUL-delimited porcelain v1 format.
func (c *Client) Status(ctx context.Context, pathspec string) ([]core.Change, error) {
	out, err := c.Run(ctx, "status", "--porcelain=v1", "-z", "--untracked-files=all", "--", pathspec)
	if err != nil {
		return nil, err
	}
	return ParseStatusZ(out)
}

// StagedPaths lists the paths currently recorded in the index.
func (c *Client) StagedPaths(ctx context.Context) ([]string, error) {
	out, err := c.Run(ctx, "diff", "--cached", "--name-only", "-z")
	if err != nil {
		return nil, err
	}
	return SplitZ(out), nil
}

// Add stages files. With all set, deletions are staged too (git add -A).
func (c *Client) Add(ctx context.Context, all bool, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := []string{"add"}
	if all {
		args = append(args, "-A")
	}
	args = append(args, "--")
	args = append(args, files...)
	_, err := c.Run(ctx, args...)
	return err
}

// Commit records the index with a subject line and an optional body paragraph.
func (c *Client) Commit(ctx context.Context, subject, body string) error {
	args := []string{"commit", "-m", subject}
	if body != "" {
		args = append(args, "-m", body)
	}
	_, err := c.Run(ctx, args...)
	return err
}
