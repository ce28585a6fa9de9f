package content

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/blogcommit/pkg/core"
)

// Default rule values.
const (
	DefaultRoot      = "content/blog"
	DefaultExtension = ".md"
	DefaultMarker    = "_"
)

// DefaultExcluded lists the root-relative paths that are never committed as posts.
var DefaultExcluded = []string{"README.md"}

// Rules classifies repository paths as qualifying content files.
type Rules struct {
	// Root is the content root, relative to the repository top level.
	Root string
	// Extension is the required file suffix, dot included.
	Extension string
	// Excluded holds doublestar patterns matched against the root-relative path.
	Excluded []string
	// Marker excludes any root-relative segment starting with it. Empty disables the check.
	Marker string
}

// DefaultRules returns the rules for content/blog/**/*.md.
func DefaultRules() Rules {
	return Rules{
		Root:      DefaultRoot,
		Extension: DefaultExtension,
		Excluded:  append([]string(nil), DefaultExcluded...),
		Marker:    DefaultMarker,
	}
}

// Validate checks the root and the exclusion patterns.
func (r Rules) Validate() error {
	root := r.Dir()
	if root == "" || root == "." || strings.HasPrefix(root, "../") || path.IsAbs(root) {
		return core.InvalidArgument("content root %q must be a relative path inside the repository", r.Root)
	}
	for _, p := range r.Excluded {
		if !doublestar.ValidatePattern(p) {
			return core.InvalidArgument("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// Prefix returns the root with a trailing slash, the form paths are compared against.
func (r Rules) Prefix() string {
	return r.Dir() + "/"
}

// Dir returns the cleaned content root without a trailing slash, usable as a git pathspec.
func (r Rules) Dir() string {
	return path.Clean(strings.TrimSuffix(strings.ReplaceAll(r.Root, "\\", "/"), "/"))
}

// Contains reports whether p lies under the content root.
func (r Rules) Contains(p string) bool {
	return strings.HasPrefix(p, r.Prefix())
}

// Qualifies reports whether p is a content file eligible for batching.
func (r Rules) Qualifies(p string) bool {
	if !r.Contains(p) || !strings.HasSuffix(p, r.Extension) {
		return false
	}

	rel := strings.TrimPrefix(p, r.Prefix())
	if r.Marker != "" {
		for _, seg := range strings.Split(rel, "/") {
			if strings.HasPrefix(seg, r.Marker) {
				return false
			}
		}
	}

	for _, pattern := range r.Excluded {
		// Patterns are checked in Validate; a bad one simply never matches.
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}

// SelectOptions narrows the selection of changes.
type SelectOptions struct {
	IncludeDeletions bool
	OnlyUntracked    bool
	OnlyTracked      bool
}

// Validate rejects contradictory subsets.
func (o SelectOptions) Validate() error {
	if o.OnlyUntracked && o.OnlyTracked {
		return core.ErrConflictingSubsets
	}
	return nil
}

// Select keeps the qualifying changes and returns them sorted by path.
// exists is consulted for every entry that is not a deletion; entries whose file
// is missing from the working tree are dropped.
func (r Rules) Select(changes []core.Change, opts SelectOptions, exists func(string) bool) ([]core.Change, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(changes))
	var selected []core.Change
	for _, c := range changes {
		if c.Path == "" || !r.Qualifies(c.Path) {
			continue
		}
		if c.IsDeletion() && !opts.IncludeDeletions {
			continue
		}
		if opts.OnlyUntracked && !c.IsUntracked() {
			continue
		}
		if opts.OnlyTracked && c.IsUntracked() {
			continue
		}
		if !c.IsDeletion() && exists != nil && !exists(c.Path) {
			continue
		}
		if _, dup := seen[c.Path]; dup {
			continue
		}
		seen[c.Path] = struct{}{}
		selected = append(selected, c)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Path < selected[j].Path
	})
	return selected, nil
}

// Paths returns the paths of changes in order.
func Paths(changes []core.Change) []string {
	out := make([]string, len(changes))
	for i, c := range changes {
		out[i] = c.Path
	}
	return out
}

// OutsideRoot returns the staged paths that do not belong to the content root.
func (r Rules) OutsideRoot(paths []string) []string {
	var out []string
	for _, p := range paths {
		if !r.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

func (r Rules) String() string {
	return fmt.Sprintf("%s**/*%s", r.Prefix(), r.Extension)
}
