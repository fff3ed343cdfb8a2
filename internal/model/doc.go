// Package model defines the core data structures used throughout psrscan.
//
// This package contains the following main types:
//   - ReportRecord: One reactor unit's status on one report date
//   - DateRange: An inclusive range of calendar days driving the batch run
//   - DayResult: The accumulated result of processing a single report date
//   - RunSummary: Aggregated statistics for a whole run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (fetch, extract, database, report, pipeline)
// need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for export output and
// database storage.
package model
