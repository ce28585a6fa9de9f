package git

import (
	"fmt"
	"strings"

	"github.com/aretw0/blogcommit/pkg/core"
)

// StatusParseError reports a record of `git status -z` output that does not follow
// the `XY PATH` layout.
type StatusParseError struct {
	Index int
	Token string
}

func (e *StatusParseError) Error() string {
	return fmt.Sprintf("malformed status record %d: %q", e.Index, e.Token)
}

// SplitZ splits NUL-delimited output, dropping empty tokens.
func SplitZ(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\x00")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseStatusToken splits a single `XY PATH` token.
func ParseStatusToken(token string) (status, path string, ok bool) {
	if len(token) < 4 || token[2] != ' ' {
		return "", "", false
	}
	return token[:2], token[3:], true
}

// ParseStatusZ parses `git status --porcelain=v1 -z` output.
//
// Rename and copy records are followed by an extra token holding the source
// path; the destination comes first and becomes Change.Path.
func ParseStatusZ(raw string) ([]core.Change, error) {
	tokens := strings.Split(raw, "\x00")
	var changes []core.Change

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if token == "" {
			continue
		}

		status, path, ok := ParseStatusToken(token)
		if !ok {
			return nil, &StatusParseError{Index: i, Token: token}
		}

		change := core.Change{Status: status, Path: path}
		if core.IsRenameOrCopyStatus(status) {
			if i+1 >= len(tokens) || tokens[i+1] == "" {
				return nil, &StatusParseError{Index: i, Token: token}
			}
			i++
			change.OrigPath = tokens[i]
		}
		changes = append(changes, change)
	}

	return changes, nil
}
