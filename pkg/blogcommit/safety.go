package blogcommit

import (
	"context"
	"strings"

	"github.com/aretw0/blogcommit/pkg/content"
	"github.com/aretw0/blogcommit/pkg/core"
	"github.com/aretw0/blogcommit/pkg/git"
)

// StagedOutsideRootError lists staged paths that would leak into a content commit.
type StagedOutsideRootError struct {
	Root  string
	Paths []string
}

func (e *StagedOutsideRootError) Error() string {
	var sb strings.Builder
	sb.WriteString("Refusing to commit files under ")
	sb.WriteString(e.Root)
	sb.WriteString(" while other files are staged.\nUnstage these first (or commit them separately):")
	for _, p := range e.Paths {
		sb.WriteString("\n- ")
		sb.WriteString(p)
	}
	return sb.String()
}

func (e *StagedOutsideRootError) Unwrap() error {
	return core.ErrStagedOutsideRoot
}

// CheckStaged fails when the index holds changes outside the content root.
// Commits record the whole index, so such changes would be bundled into the first batch.
// On success it returns the staged paths, all of them under the root.
func CheckStaged(ctx context.Context, client *git.Client, rules content.Rules) ([]string, error) {
	staged, err := client.StagedPaths(ctx)
	if err != nil {
		return nil, err
	}
	if outside := rules.OutsideRoot(staged); len(outside) > 0 {
		return nil, &StagedOutsideRootError{Root: rules.Prefix(), Paths: outside}
	}
	return staged, nil
}
