package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".psrscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .psrscan configuration file.
// Every field is optional; set fields override the built-in defaults and
// are in turn overridden by explicit CLI flags.
type File struct {
	// BaseURL overrides the archive URL prefix.
	BaseURL string `yaml:"baseURL,omitempty"`

	// Output overrides the pipe-delimited output file path.
	Output string `yaml:"output,omitempty"`

	// CacheDir overrides the HTML cache directory.
	CacheDir string `yaml:"cacheDir,omitempty"`

	// DBDir overrides the SQLite database directory.
	DBDir string `yaml:"dbDir,omitempty"`

	// Summary overrides the Markdown summary output path.
	Summary string `yaml:"summary,omitempty"`

	// UserAgent overrides the HTTP User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Timeout overrides the per-request timeout.
	// Go duration syntax, e.g. "30s" or "2m".
	Timeout string `yaml:"timeout,omitempty"`

	// Retries overrides the attempts per fetch.
	Retries int `yaml:"retries,omitempty"`

	// RetryBackoff overrides the linear backoff base (duration syntax).
	RetryBackoff string `yaml:"retryBackoff,omitempty"`

	// FetchDelay overrides the politeness delay between network fetches
	// (duration syntax).
	FetchDelay string `yaml:"fetchDelay,omitempty"`

	// IgnoreRobots skips the robots.txt courtesy check.
	IgnoreRobots bool `yaml:"ignoreRobots,omitempty"`
}

// LoadConfigFile loads configuration overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error appropriately based on whether the config file path was
// explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	// Reject malformed durations at load time so the error names the file
	// rather than surfacing later as a silently ignored override.
	for _, d := range []string{cf.Timeout, cf.RetryBackoff, cf.FetchDelay} {
		if d == "" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			return nil, fmt.Errorf("invalid duration %q in %s: %w", d, path, err)
		}
	}

	return &cf, nil
}

// Apply merges the file's set fields into the config.
// Zero-valued fields in the file leave the config untouched, so defaults
// and flag values survive.
func (cf *File) Apply(cfg *Config) {
	if cf.BaseURL != "" {
		cfg.BaseURL = cf.BaseURL
	}
	if cf.Output != "" {
		cfg.OutputFile = cf.Output
	}
	if cf.CacheDir != "" {
		cfg.CacheDir = cf.CacheDir
	}
	if cf.DBDir != "" {
		cfg.DBDir = cf.DBDir
	}
	if cf.Summary != "" {
		cfg.SummaryFile = cf.Summary
	}
	if cf.UserAgent != "" {
		cfg.UserAgent = cf.UserAgent
	}
	if d, err := time.ParseDuration(cf.Timeout); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if cf.Retries > 0 {
		cfg.Retries = cf.Retries
	}
	if d, err := time.ParseDuration(cf.RetryBackoff); err == nil && d > 0 {
		cfg.RetryBackoff = d
	}
	if d, err := time.ParseDuration(cf.FetchDelay); err == nil && d > 0 {
		cfg.FetchDelay = d
	}
	if cf.IgnoreRobots {
		cfg.IgnoreRobots = true
	}
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .psrscan in the current directory
//  3. Look for .psrscan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
