package blogcommit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/blogcommit/pkg/content"
	"github.com/aretw0/blogcommit/pkg/core"
)

// Defaults.
const (
	DefaultBatchSize     = 25
	DefaultSubjectPrefix = "blog post added"
	DefaultNoun          = "blog post"
	DefaultConfigFile    = ".blogcommit.yaml"
)

// Config holds everything a run needs. It can be loaded from YAML and
// overridden by command line flags.
type Config struct {
	Root      string   `yaml:"root"`
	Extension string   `yaml:"extension"`
	Exclude   []string `yaml:"exclude"`
	Marker    string   `yaml:"marker"`

	SubjectPrefix string `yaml:"subject_prefix"`
	Noun          string `yaml:"noun"`

	BatchSize  int  `yaml:"batch_size"`
	PerFile    bool `yaml:"per_file"`
	MaxCommits int  `yaml:"max_commits"`

	IncludeDeletions bool `yaml:"include_deletions"`
	OnlyUntracked    bool `yaml:"only_untracked"`
	OnlyTracked      bool `yaml:"only_tracked"`

	DryRun bool `yaml:"-"`
}

// DefaultConfig returns the configuration used when neither a file nor flags say otherwise.
func DefaultConfig() Config {
	rules := content.DefaultRules()
	return Config{
		Root:          rules.Root,
		Extension:     rules.Extension,
		Exclude:       rules.Excluded,
		Marker:        rules.Marker,
		SubjectPrefix: DefaultSubjectPrefix,
		Noun:          DefaultNoun,
		BatchSize:     DefaultBatchSize,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
// Keys absent from the file keep their default; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Rules returns the content filter described by the config.
func (c Config) Rules() content.Rules {
	return content.Rules{
		Root:      c.Root,
		Extension: c.Extension,
		Excluded:  c.Exclude,
		Marker:    c.Marker,
	}
}

// SelectOptions returns the deletion and tracked/untracked narrowing.
func (c Config) SelectOptions() content.SelectOptions {
	return content.SelectOptions{
		IncludeDeletions: c.IncludeDeletions,
		OnlyUntracked:    c.OnlyUntracked,
		OnlyTracked:      c.OnlyTracked,
	}
}

// EffectiveBatchSize is 1 in per-file mode and BatchSize otherwise.
func (c Config) EffectiveBatchSize() int {
	if c.PerFile {
		return 1
	}
	return c.BatchSize
}

// Validate reports the first invalid value as an error matching core.ErrInvalidArgument.
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return core.ErrInvalidBatchSize
	}
	if c.MaxCommits < 0 {
		return core.ErrInvalidMaxCommits
	}
	if err := c.SelectOptions().Validate(); err != nil {
		return err
	}
	if c.Extension == "" {
		return core.InvalidArgument("extension must not be empty")
	}
	return c.Rules().Validate()
}
