package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/reactorwatch/psrscan/internal/database"
	"github.com/reactorwatch/psrscan/internal/extract"
	"github.com/reactorwatch/psrscan/internal/fetch"
	"github.com/reactorwatch/psrscan/internal/model"
)

// progressEvery controls how often the runner reports progress.
const progressEvery = 10

// Runner drives the pipeline over a date range, one day at a time in
// ascending order.
//
// Design decision: Days are processed sequentially rather than with a
// worker pool. The archive is a single small host serving three-decade-old
// pages; ordered output and politeness matter more than throughput, and
// sequential execution keeps the output file append-only with no
// reordering step.
type Runner struct {
	pipeline *Pipeline
	db       *database.StatusDB
	logger   *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets the logger used for progress and skip reporting.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithFailureLedger sets the database used to record failed days in the
// fetch ledger. Successful days are recorded by the store step; failed
// days never reach it, so the runner writes those entries itself.
func WithFailureLedger(db *database.StatusDB) RunnerOption {
	return func(r *Runner) {
		r.db = db
	}
}

// NewRunner creates a Runner for the given pipeline.
func NewRunner(p *Pipeline, opts ...RunnerOption) *Runner {
	r := &Runner{
		pipeline: p,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run processes every day in the range and returns the run summary.
//
// Fetch and parse failures are per-day events: the day is logged,
// counted as failed, and the run continues. Any other error (output
// write, database) aborts the run immediately, returning the partial
// summary alongside the error. Context cancellation also aborts.
func (r *Runner) Run(ctx context.Context, dateRange model.DateRange) (*model.RunSummary, error) {
	summary := model.NewRunSummary(dateRange)
	defer summary.Finish()

	total := dateRange.Len()
	processed := 0

	for date := range dateRange.Days() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		day := model.NewDayResult(date)
		if err := r.pipeline.Execute(ctx, day); err != nil {
			if !skippable(err) {
				return summary, err
			}

			day.Err = err
			r.logger.Warn("skipping day",
				slog.Time("date", date),
				slog.String("error", err.Error()))
			r.ledgerFailure(ctx, day)
		}
		summary.RecordDay(day)

		processed++
		if processed%progressEvery == 0 || processed == total {
			r.logger.Info("progress",
				slog.Int("days", processed),
				slog.Int("total", total),
				slog.Int("records", summary.Records))
		}
	}

	return summary, nil
}

// skippable reports whether the error is a per-day failure the run can
// continue past. Fetch and parse errors are; everything else aborts.
func skippable(err error) bool {
	var fetchErr *fetch.FetchError
	if errors.As(err, &fetchErr) {
		return true
	}
	var parseErr *extract.ParseError
	return errors.As(err, &parseErr)
}

// ledgerFailure records a failed day in the fetch ledger, if a database
// is configured. Ledger write errors are logged but do not escalate a
// skipped day into a run abort.
func (r *Runner) ledgerFailure(ctx context.Context, day *model.DayResult) {
	if r.db == nil {
		return
	}

	entry := &database.FetchLogEntry{
		Date:       day.Date,
		URL:        day.URL,
		StatusCode: day.StatusCode,
		FromCache:  day.FromCache,
		Attempts:   day.Attempts,
		Error:      day.Err.Error(),
	}
	if err := r.db.LogFetch(ctx, entry); err != nil {
		r.logger.Warn("failed to record failure in ledger",
			slog.Time("date", day.Date),
			slog.String("error", err.Error()))
	}
}
