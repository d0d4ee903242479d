// Package config loads the on-disk TOML configuration: exclude/ignore filter
// rules and the S/M/L/XL size thresholds.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pelletier/go-toml/v2"

	"github.com/sawaday/gh-log/internal/domain"
)

const fileName = "config.toml"

// PatternError reports a filter regex that does not compile. It is a
// configuration fault, surfaced at load time before any PR is processed.
type PatternError struct {
	Field   string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s entry %q: %v", e.Field, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// FilterConfig mirrors the [filter] TOML table. exclude_* entries hide PRs
// entirely; ignore_* entries drop PRs from metrics. An entry present in both
// lists excludes.
type FilterConfig struct {
	ExcludeRepos    []string `toml:"exclude_repos"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	IgnoreRepos     []string `toml:"ignore_repos"`
	IgnorePatterns  []string `toml:"ignore_patterns"`
}

// Config mirrors the on-disk TOML layout. Load compiles the filter patterns
// and validates the thresholds, so a Config in hand is always usable.
type Config struct {
	Filter FilterConfig          `toml:"filter"`
	Size   domain.SizeThresholds `toml:"size"`

	path  string
	rules domain.FilterRules
}

// Default loads the configuration from the standard OS config directory,
// creating a commented template on first run.
func Default() (*Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return Load(dir)
}

// DefaultDir returns the gh-log configuration directory for this OS.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(base, "gh-log"), nil
}

// Load reads config.toml from dir, writing a template first if the file does
// not exist yet. Invalid regex patterns and non-ascending thresholds are
// typed, recoverable errors.
func Load(dir string) (*Config, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, fileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := WriteTemplate(path); err != nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "Created config: %s\n", path)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{Size: domain.DefaultSizeThresholds()}
	if err := toml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.compile(); err != nil {
		return nil, err
	}
	if err := cfg.Size.Validate(); err != nil {
		return nil, err
	}

	cfg.path = path
	return cfg, nil
}

// Path is the on-disk location the config was loaded from.
func (c *Config) Path() string { return c.path }

// Rules returns the compiled filter rules. Load already validated every
// pattern, so this never fails.
func (c *Config) Rules() domain.FilterRules { return c.rules }

func (c *Config) compile() error {
	exclude, err := compilePatterns("exclude_patterns", c.Filter.ExcludePatterns)
	if err != nil {
		return err
	}
	ignore, err := compilePatterns("ignore_patterns", c.Filter.IgnorePatterns)
	if err != nil {
		return err
	}
	c.rules = domain.FilterRules{
		ExcludeRepos:    c.Filter.ExcludeRepos,
		ExcludePatterns: exclude,
		IgnoreRepos:     c.Filter.IgnoreRepos,
		IgnorePatterns:  ignore,
	}
	return nil
}

func compilePatterns(field string, patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &PatternError{Field: field, Pattern: pattern, Err: err}
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

const template = `# gh-log configuration
#
# [filter]
# exclude_* = not shown at all (filtered out completely)
# ignore_*  = shown but not counted in metrics
#
# [size]
# small = 50    # S: <= 50 lines changed
# medium = 200  # M: 51-200 lines
# large = 500   # L: 201-500 lines, XL: > 500 lines

[filter]
exclude_repos = ["username/spam"]
exclude_patterns = ["^test:", "^tmp:"]
ignore_repos = ["username/private", "username/notes"]
ignore_patterns = ["^docs:", "^meeting:"]

[size]
small = 50
medium = 200
large = 500
`

// WriteTemplate writes the documented sample configuration to path,
// overwriting any existing contents.
func WriteTemplate(path string) error {
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return fmt.Errorf("failed to write example config %s: %w", path, err)
	}
	return nil
}
