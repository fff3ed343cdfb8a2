// Package pipeline orchestrates the per-day extraction flow.
//
// A day moves through an ordered list of steps: fetch the report page,
// extract the unit records, persist them, and append them to the output
// file. Steps share a single mutable DayResult so later steps can see
// everything earlier steps learned about the day.
//
// The Runner drives the pipeline over a date range, strictly in order
// and one day at a time. Fetch and parse failures are per-day events:
// the runner logs them, folds them into the run summary, and moves on.
// Output and storage failures abort the run, since continuing past them
// would silently produce an incomplete artifact.
package pipeline
