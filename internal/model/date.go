package model

import (
	"fmt"
	"iter"
	"time"
)

// ReportYear is the calendar year covered by the NRC daily status archive
// this tool targets. The archive layout (one page per day, YYYYMMDDps.html)
// is specific to this year; other years use different page formats.
const ReportYear = 1999

// DateKeyLayout is the time layout used to key cache files and report URLs.
// The NRC archive names each day's page with this compact form.
const DateKeyLayout = "20060102"

// DateRange is an inclusive range of calendar days.
// Both endpoints are interpreted as dates in UTC; time-of-day is ignored.
type DateRange struct {
	// Start is the first day of the range.
	Start time.Time

	// End is the last day of the range (inclusive).
	End time.Time
}

// Year1999 returns the full report year range, 1999-01-01 through 1999-12-31.
func Year1999() DateRange {
	return DateRange{
		Start: time.Date(ReportYear, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(ReportYear, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Days returns an iterator over every day in the range in ascending order.
// The sequence is finite and yields each day exactly once.
//
// Design decision: We expose an iterator rather than a pre-built slice
// because the range drives a streaming pipeline. Callers that need a slice
// can use All().
func (r DateRange) Days() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for d := truncateToDay(r.Start); !d.After(truncateToDay(r.End)); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// All returns every day in the range as a slice, in ascending order.
func (r DateRange) All() []time.Time {
	days := make([]time.Time, 0, r.Len())
	for d := range r.Days() {
		days = append(days, d)
	}
	return days
}

// Len returns the number of days in the range.
// An inverted range (End before Start) has length zero.
func (r DateRange) Len() int {
	start := truncateToDay(r.Start)
	end := truncateToDay(r.End)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Contains reports whether the given day falls within the range.
func (r DateRange) Contains(d time.Time) bool {
	day := truncateToDay(d)
	return !day.Before(truncateToDay(r.Start)) && !day.After(truncateToDay(r.End))
}

// String returns the range in "YYYY-MM-DD..YYYY-MM-DD" form for logging.
func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// DateKey returns the compact YYYYMMDD form of a date.
// This is the key used for cache file names and report page URLs.
func DateKey(d time.Time) string {
	return d.Format(DateKeyLayout)
}

// truncateToDay drops the time-of-day portion of a timestamp.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
