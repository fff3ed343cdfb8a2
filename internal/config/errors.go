package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidBaseURL is returned when the report base URL is empty or
	// cannot be parsed as an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http(s) URL")

	// ErrNoOutputFile is returned when the output file path is empty.
	ErrNoOutputFile = errors.New("no output file: provide a path for the pipe-delimited output")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRetries is returned when the retry count is less than one.
	// Every fetch needs at least one attempt.
	ErrInvalidRetries = errors.New("invalid retries: must be at least 1")

	// ErrInvalidRetryBackoff is returned when the retry backoff is negative.
	// Use 0 to retry immediately.
	ErrInvalidRetryBackoff = errors.New("invalid retry backoff: must be non-negative")

	// ErrInvalidFetchDelay is returned when the politeness delay is negative.
	// Use 0 for no delay between network fetches.
	ErrInvalidFetchDelay = errors.New("invalid fetch delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to apply the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
