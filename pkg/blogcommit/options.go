package blogcommit

// Option defines a functional option for building a Config.
type Option func(*Config)

// NewConfig applies opts on top of DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithDryRun prints the plan without staging or committing.
func WithDryRun(dry bool) Option {
	return func(c *Config) {
		c.DryRun = dry
	}
}

// WithBatchSize sets the number of files per commit.
func WithBatchSize(size int) Option {
	return func(c *Config) {
		c.BatchSize = size
	}
}

// WithPerFile commits every file on its own.
func WithPerFile(perFile bool) Option {
	return func(c *Config) {
		c.PerFile = perFile
	}
}

// WithMaxCommits caps the number of commits created. Zero means unlimited.
func WithMaxCommits(n int) Option {
	return func(c *Config) {
		c.MaxCommits = n
	}
}

// WithIncludeDeletions stages deleted posts as well.
func WithIncludeDeletions(include bool) Option {
	return func(c *Config) {
		c.IncludeDeletions = include
	}
}

// WithOnlyUntracked restricts the run to files git does not know yet.
func WithOnlyUntracked(only bool) Option {
	return func(c *Config) {
		c.OnlyUntracked = only
	}
}

// WithOnlyTracked restricts the run to files git already tracks.
func WithOnlyTracked(only bool) Option {
	return func(c *Config) {
		c.OnlyTracked = only
	}
}

// WithRoot changes the content root (relative to the repository top level).
func WithRoot(root string) Option {
	return func(c *Config) {
		c.Root = root
	}
}

// WithExclude replaces the excluded path patterns.
func WithExclude(patterns ...string) Option {
	return func(c *Config) {
		c.Exclude = patterns
	}
}

// WithSubjectPrefix changes the text before the slug in commit subjects.
func WithSubjectPrefix(prefix string) Option {
	return func(c *Config) {
		c.SubjectPrefix = prefix
	}
}
