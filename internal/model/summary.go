package model

import (
	"sort"
	"time"
)

// RunSummary aggregates statistics for a whole extraction run.
// It is built incrementally by the pipeline runner and rendered by the
// report writers at the end of the run.
type RunSummary struct {
	// Range is the date range the run covered.
	Range DateRange `json:"range"`

	// StartedAt is the wall-clock time the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is the wall-clock time the run ended.
	FinishedAt time.Time `json:"finished_at"`

	// DaysProcessed counts days that completed the pipeline, including
	// days that yielded zero records.
	DaysProcessed int `json:"days_processed"`

	// DaysFailed counts days abandoned after a fetch or parse failure.
	DaysFailed int `json:"days_failed"`

	// DaysEmpty counts successfully processed days with no extracted
	// records (holidays and archive gaps).
	DaysEmpty int `json:"days_empty"`

	// CacheHits counts days served entirely from the on-disk cache.
	CacheHits int `json:"cache_hits"`

	// NetworkFetches counts days that required a network fetch.
	NetworkFetches int `json:"network_fetches"`

	// Records counts every record written during the run.
	Records int `json:"records"`

	// FailedDates lists the dates of failed days in ascending order.
	FailedDates []time.Time `json:"failed_dates,omitempty"`

	// byMonth holds per-month statistics, populated lazily.
	byMonth map[time.Month]*MonthStats
}

// MonthStats holds per-month counters for the run summary.
type MonthStats struct {
	// Month is the calendar month the counters cover.
	Month time.Month `json:"month"`

	// Days counts processed days in the month.
	Days int `json:"days"`

	// Failed counts failed days in the month.
	Failed int `json:"failed"`

	// Records counts extracted records in the month.
	Records int `json:"records"`
}

// NewRunSummary creates a RunSummary for the given range.
func NewRunSummary(r DateRange) *RunSummary {
	return &RunSummary{
		Range:     r,
		StartedAt: time.Now(),
		byMonth:   make(map[time.Month]*MonthStats),
	}
}

// RecordDay folds a completed day's result into the summary.
func (s *RunSummary) RecordDay(day *DayResult) {
	m := s.month(day.Date.Month())

	if day.Failed() {
		s.DaysFailed++
		s.FailedDates = append(s.FailedDates, day.Date)
		m.Failed++
		return
	}

	s.DaysProcessed++
	m.Days++

	if day.FromCache {
		s.CacheHits++
	} else {
		s.NetworkFetches++
	}

	if len(day.Records) == 0 {
		s.DaysEmpty++
	}
	s.Records += len(day.Records)
	m.Records += len(day.Records)
}

// Finish stamps the run end time.
func (s *RunSummary) Finish() {
	s.FinishedAt = time.Now()
}

// Elapsed returns the wall-clock duration of the run.
// Valid only after Finish has been called.
func (s *RunSummary) Elapsed() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Months returns the per-month statistics in calendar order.
// Months with no activity are omitted.
func (s *RunSummary) Months() []MonthStats {
	out := make([]MonthStats, 0, len(s.byMonth))
	for _, m := range s.byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// month returns the stats bucket for a month, creating it on first use.
func (s *RunSummary) month(m time.Month) *MonthStats {
	if s.byMonth == nil {
		s.byMonth = make(map[time.Month]*MonthStats)
	}
	ms, ok := s.byMonth[m]
	if !ok {
		ms = &MonthStats{Month: m}
		s.byMonth[m] = ms
	}
	return ms
}
