package config

// CurrentVersion is the configuration format version written by this build.
const CurrentVersion = "1.0"

// Config represents the mknote configuration
type Config struct {
	Version  string    `yaml:"version" json:"version"`
	Location string    `yaml:"location,omitempty" json:"location,omitempty"`
	Ignore   []string  `yaml:"ignore,omitempty" json:"ignore,omitempty"`
	Locale   string    `yaml:"locale,omitempty" json:"locale,omitempty"`
	Log      LogConfig `yaml:"log,omitempty" json:"log"`
	Git      GitConfig `yaml:"git,omitempty" json:"git"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// GitConfig represents sync configuration
type GitConfig struct {
	AuthorName  string `yaml:"authorName,omitempty" json:"authorName,omitempty"`
	AuthorEmail string `yaml:"authorEmail,omitempty" json:"authorEmail,omitempty"`
	// Remote is the remote to sync with; origin or the first remote when empty
	Remote string `yaml:"remote,omitempty" json:"remote,omitempty"`
}

// DefaultConfig returns the default mknote configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Locale:  "und",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Git: GitConfig{
			AuthorName:  "mknote",
			AuthorEmail: "mknote@localhost",
		},
	}
}

// applyDefaults fills unset fields after a file has been loaded
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.Locale == "" {
		cfg.Locale = def.Locale
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Git.AuthorName == "" {
		cfg.Git.AuthorName = def.Git.AuthorName
	}
	if cfg.Git.AuthorEmail == "" {
		cfg.Git.AuthorEmail = def.Git.AuthorEmail
	}
}
