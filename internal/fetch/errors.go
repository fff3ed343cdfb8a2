package fetch

import (
	"fmt"
	"time"
)

// FetchError reports a failed page fetch after all attempts were exhausted.
// It carries enough context for the caller to log the failure and for the
// run summary to attribute it to a date.
//
// Design decision: We use a typed error rather than wrapped sentinel errors
// because callers need the structured fields (date, attempts, status) to
// build the fetch ledger, not just an identity check.
type FetchError struct {
	// Date is the report date whose page could not be fetched.
	Date time.Time

	// URL is the page URL that failed.
	URL string

	// Attempts is the number of requests issued before giving up.
	Attempts int

	// StatusCode is the last HTTP status received, or 0 if the failure
	// happened before a response arrived.
	StatusCode int

	// Err is the underlying cause of the final attempt.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s (%s): HTTP %d after %d attempt(s)",
			e.Date.Format("2006-01-02"), e.URL, e.StatusCode, e.Attempts)
	}
	return fmt.Sprintf("fetch %s (%s): %v after %d attempt(s)",
		e.Date.Format("2006-01-02"), e.URL, e.Err, e.Attempts)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *FetchError) Unwrap() error {
	return e.Err
}
