package model

import (
	"fmt"
	"strings"
	"time"
)

// ReportRecord is one reactor unit's reported status on one report date.
// Records are immutable once created: they are produced by the extractor,
// written to the output sinks, and discarded.
type ReportRecord struct {
	// Date is the report date the record was published for.
	Date time.Time `json:"date"`

	// Unit is the short identifier for the reactor unit (e.g., "Browns Ferry 2").
	// Plants with multiple units report each unit separately.
	Unit string `json:"unit"`

	// Power is the reported power level, normally a percentage of rated
	// capacity. Kept as text because the source occasionally publishes
	// non-numeric values; no validation is applied beyond trimming.
	Power string `json:"power"`

	// Reason is the free-text outage reason or comment column.
	// Empty when the unit was at full power with nothing to report.
	Reason string `json:"reason,omitempty"`
}

// PSV serializes the record as a pipe-delimited line without the trailing
// newline: M/D/YYYY|UNIT|POWER|REASON. The date is not zero-padded, matching
// the established output format of the dataset.
func (r ReportRecord) PSV() string {
	return fmt.Sprintf("%s|%s|%s|%s",
		FormatReportDate(r.Date),
		SanitizeField(r.Unit),
		SanitizeField(r.Power),
		SanitizeField(r.Reason),
	)
}

// FormatReportDate renders a date as M/D/YYYY without zero padding.
func FormatReportDate(d time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(d.Month()), d.Day(), d.Year())
}

// SanitizeField makes a value safe to embed in a pipe-delimited field.
// Pipes would corrupt the record framing, so they are replaced with spaces.
func SanitizeField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "|", " "))
}
