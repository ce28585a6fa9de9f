package blogcommit

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/blogcommit/pkg/content"
	"github.com/aretw0/blogcommit/pkg/core"
)

// Batch is one commit worth of posts.
// Stage lists the paths handed to git add; deletions already recorded in
// the index are committed as they are and never staged again.
type Batch struct {
	Index   int      `json:"index"`
	Paths   []string `json:"paths"`
	Stage   []string `json:"stage"`
	Slugs   []string `json:"slugs"`
	Message Message  `json:"message"`
}

// Plan is the result of scanning and grouping, before anything is committed.
type Plan struct {
	RepoRoot string
	Rules    content.Rules
	Changes  []core.Change
	Slugs    map[string]string

	// Batches holds the batches that will be committed, after the max-commits cap.
	Batches []Batch
	// Computed is the number of batches before the cap.
	Computed int

	BatchSize        int
	PerFile          bool
	MaxCommits       int
	DryRun           bool
	IncludeDeletions bool

	committed int
}

// Empty reports whether there is nothing to commit.
func (p *Plan) Empty() bool {
	return len(p.Batches) == 0
}

// Committed returns how many batches have been committed so far.
func (p *Plan) Committed() int {
	return p.committed
}

// BatchPaths returns the paths of every planned batch, in commit order.
func (p *Plan) BatchPaths() [][]string {
	out := make([][]string, len(p.Batches))
	for i, b := range p.Batches {
		out[i] = b.Paths
	}
	return out
}

// PlanState is the JSON view of a plan.
type PlanState struct {
	RepoRoot   string        `json:"repo_root"`
	Root       string        `json:"root"`
	Files      int           `json:"files"`
	Changes    []core.Change `json:"changes"`
	Computed   int           `json:"computed_batches"`
	Planned    int           `json:"planned_batches"`
	Committed  int           `json:"committed"`
	BatchSize  int           `json:"batch_size"`
	PerFile    bool          `json:"per_file"`
	MaxCommits int           `json:"max_commits"`
	DryRun     bool          `json:"dry_run"`
	Batches    []Batch       `json:"batches"`
}

// State implements introspection.Introspectable.
func (p *Plan) State() any {
	changes := p.Changes
	if changes == nil {
		changes = []core.Change{}
	}
	batches := p.Batches
	if batches == nil {
		batches = []Batch{}
	}
	return PlanState{
		RepoRoot:   p.RepoRoot,
		Root:       p.Rules.Prefix(),
		Files:      len(p.Changes),
		Changes:    changes,
		Computed:   p.Computed,
		Planned:    len(p.Batches),
		Committed:  p.committed,
		BatchSize:  p.BatchSize,
		PerFile:    p.PerFile,
		MaxCommits: p.MaxCommits,
		DryRun:     p.DryRun,
		Batches:    batches,
	}
}

// ComponentType implements introspection.Component.
func (p *Plan) ComponentType() string {
	return "commit-plan"
}

var _ introspection.Introspectable = (*Plan)(nil)
var _ introspection.Component = (*Plan)(nil)
