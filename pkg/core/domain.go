// Package core holds the domain types shared by the scanner, the filter and the committer.
package core

import "strings"

// Status codes used by git's porcelain v1 format.
const (
	StatusUntracked = "??"
	StatusIgnored   = "!!"
)

// Change is one entry of the working tree status.
// Status is the two-character XY code. Path is repository-relative and, for
// renames and copies, names the destination; OrigPath names the source.
type Change struct {
	Status   string `json:"status"`
	Path     string `json:"path"`
	OrigPath string `json:"orig_path,omitempty"`
}

// IsUntracked reports whether the path is not yet known to git.
func (c Change) IsUntracked() bool {
	return c.Status == StatusUntracked
}

// IsDeletion reports whether either side of the status records a deletion.
func (c Change) IsDeletion() bool {
	return strings.Contains(c.Status, "D")
}

// IsStagedDeletion reports whether the index already records the deletion.
// The path is then gone from both the index and the worktree, so there is
// nothing left to stage: a pathspec naming it matches no file.
func (c Change) IsStagedDeletion() bool {
	return len(c.Status) == 2 && c.Status[0] == 'D'
}

// IsRenameOrCopy reports whether the record carries an original path.
func (c Change) IsRenameOrCopy() bool {
	return IsRenameOrCopyStatus(c.Status)
}

// IsRenameOrCopyStatus reports whether the XY code announces a second path token.
func IsRenameOrCopyStatus(status string) bool {
	return strings.ContainsAny(status, "RC")
}
