package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// Network defaults mirror the behavior the dataset was originally produced
// with, so a default run regenerates the same output file.
const (
	// DefaultBaseURL is the NRC reading-room archive for the 1999 daily
	// Power Reactor Status Reports. Each day's page lives at
	// <base>/YYYYMMDDps.html under this prefix.
	DefaultBaseURL = "https://www.nrc.gov/reading-rm/doc-collections/event-status/reactor-status/1999"

	// DefaultOutputFile is the pipe-delimited output path.
	// The parent directory is created on first write.
	DefaultOutputFile = "output/nrc_reactor_status_1999.psv"

	// DefaultCacheDir holds one raw HTML file per report date. Deleting
	// the directory is always safe; it only forces a full re-fetch.
	DefaultCacheDir = ".cache/nrc_1999_html"

	// DefaultTimeout is the per-request connection timeout. The archive
	// is a static document server, so 30 seconds is generous.
	DefaultTimeout = 30 * time.Second

	// DefaultRetries is the number of fetch attempts per page.
	// Five attempts rides out the transient failures a 365-request run
	// reliably encounters.
	DefaultRetries = 5

	// DefaultRetryBackoff is the base of the linear backoff between
	// attempts: the wait before attempt n is backoff * (n-1).
	DefaultRetryBackoff = 1250 * time.Millisecond

	// DefaultFetchDelay is the politeness delay between network fetches.
	// Cache hits are not delayed. 500ms keeps a cold 365-page run to a
	// few minutes without hammering the archive.
	DefaultFetchDelay = 500 * time.Millisecond

	// DefaultUserAgent identifies psrscan in HTTP requests. A descriptive
	// User-Agent lets the archive operator identify this traffic.
	DefaultUserAgent = "psrscan/1.0 (+https://github.com/reactorwatch/psrscan)"

	// DefaultMaxBodySize limits the response body size to read. The daily
	// pages are tens of kilobytes; 5MB is a safety margin, not a target.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "psrscan"
)

// Config holds all configuration options for psrscan.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FetchConfig, OutputConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// BaseURL is the archive URL prefix for the daily report pages.
	BaseURL string

	// OutputFile is the pipe-delimited output file path.
	OutputFile string

	// CacheDir is the on-disk HTML cache directory.
	// Ignored when NoCache is true.
	CacheDir string

	// NoCache disables the on-disk HTML cache entirely: every day is
	// fetched from the network and nothing is persisted.
	NoCache bool

	// SummaryFile, when set, is the path to write a Markdown run summary.
	SummaryFile string

	// Timeout is the connection timeout for each HTTP request.
	Timeout time.Duration

	// Retries is the maximum number of attempts per network fetch.
	Retries int

	// RetryBackoff is the base of the linear backoff between attempts.
	RetryBackoff time.Duration

	// FetchDelay is the politeness delay between network fetches.
	// Not applied to cache hits.
	FetchDelay time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64

	// IgnoreRobots skips the robots.txt courtesy check.
	// The check itself is best-effort; this flag exists for archives
	// whose robots.txt would otherwise block a legitimate run.
	IgnoreRobots bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONLog switches log output from text to JSON format.
	JSONLog bool

	// DBDir is the directory path for storing the SQLite database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to persist records and the fetch ledger
	// to the database. Disabled with --no-db.
	SaveToDB bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .psrscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that reproduce the
// published dataset. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero (URLs, timeouts, paths).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		OutputFile:   DefaultOutputFile,
		CacheDir:     DefaultCacheDir,
		Timeout:      DefaultTimeout,
		Retries:      DefaultRetries,
		RetryBackoff: DefaultRetryBackoff,
		FetchDelay:   DefaultFetchDelay,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
		SaveToDB:     true,
		DBDir:        XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for psrscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/psrscan
// On macOS: ~/Library/Application Support/psrscan
// On Windows: %LOCALAPPDATA%\psrscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for psrscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for psrscan.
// The default cache lives under the working directory instead (the cache
// is a per-dataset artifact, not a per-user one), but --cache-dir accepts
// this path for users who prefer XDG placement.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any fetching begins.
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidBaseURL
	}

	if c.OutputFile == "" {
		return ErrNoOutputFile
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Retries < 1 {
		return ErrInvalidRetries
	}

	if c.RetryBackoff < 0 {
		return ErrInvalidRetryBackoff
	}

	if c.FetchDelay < 0 {
		return ErrInvalidFetchDelay
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
