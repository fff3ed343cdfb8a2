package model

import "time"

// DayResult accumulates the outcome of processing a single report date as it
// moves through the pipeline. Each pipeline step fills in the fields it is
// responsible for.
//
// Design decision: Steps share one mutable result object rather than passing
// values through return chains because it keeps the Step interface uniform
// and lets later steps (storage, summary) see everything earlier steps
// learned about the day.
type DayResult struct {
	// Date is the report date being processed.
	Date time.Time

	// URL is the report page URL for the date.
	URL string

	// HTML is the raw page markup, from cache or network.
	HTML string

	// FromCache indicates the HTML was served from the on-disk cache
	// without any network access.
	FromCache bool

	// StatusCode is the HTTP status of the network fetch.
	// Zero for cache hits.
	StatusCode int

	// Attempts is the number of network requests issued for the day.
	// Zero for cache hits.
	Attempts int

	// Records holds the extracted unit records in page order.
	// Empty for days with no published data (holidays, gaps in the archive).
	Records []ReportRecord

	// Err records a non-fatal failure for the day (fetch or parse).
	// The run continues past failed days; the failure is surfaced in the
	// run summary and the fetch ledger.
	Err error
}

// NewDayResult creates a DayResult for the given report date.
func NewDayResult(date time.Time) *DayResult {
	return &DayResult{Date: date}
}

// Failed reports whether the day ended with a recorded failure.
func (d *DayResult) Failed() bool {
	return d.Err != nil
}
