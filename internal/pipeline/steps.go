package pipeline

import (
	"context"
	"fmt"

	"github.com/reactorwatch/psrscan/internal/database"
	"github.com/reactorwatch/psrscan/internal/extract"
	"github.com/reactorwatch/psrscan/internal/fetch"
	"github.com/reactorwatch/psrscan/internal/model"
	"github.com/reactorwatch/psrscan/internal/report"
)

// FetchStep retrieves the day's report page, from cache or network.
type FetchStep struct {
	fetcher *fetch.Fetcher
}

// NewFetchStep creates a FetchStep using the given fetcher.
func NewFetchStep(fetcher *fetch.Fetcher) *FetchStep {
	return &FetchStep{fetcher: fetcher}
}

// Name returns the step identifier.
func (s *FetchStep) Name() string { return "fetch" }

// Do retrieves the page and records the fetch outcome on the day.
func (s *FetchStep) Do(ctx context.Context, day *model.DayResult) error {
	day.URL = s.fetcher.URLFor(day.Date)

	res, err := s.fetcher.Fetch(ctx, day.Date)
	if err != nil {
		return err
	}

	day.HTML = res.Body
	day.FromCache = res.FromCache
	day.StatusCode = res.StatusCode
	day.Attempts = res.Attempts
	return nil
}

// ExtractStep parses unit records out of the day's HTML.
type ExtractStep struct {
	extractor *extract.Extractor
}

// NewExtractStep creates an ExtractStep using the given extractor.
func NewExtractStep(extractor *extract.Extractor) *ExtractStep {
	return &ExtractStep{extractor: extractor}
}

// Name returns the step identifier.
func (s *ExtractStep) Name() string { return "extract" }

// Do extracts records from the page HTML in page order.
// Zero records is a normal outcome for holidays and archive gaps.
func (s *ExtractStep) Do(_ context.Context, day *model.DayResult) error {
	records, err := s.extractor.Extract(day.Date, day.HTML)
	if err != nil {
		return err
	}
	day.Records = records
	return nil
}

// StoreStep persists the day's records and fetch outcome to the status
// database. A nil database disables the step.
type StoreStep struct {
	db *database.StatusDB
}

// NewStoreStep creates a StoreStep writing to the given database.
func NewStoreStep(db *database.StatusDB) *StoreStep {
	return &StoreStep{db: db}
}

// Name returns the step identifier.
func (s *StoreStep) Name() string { return "store" }

// Do upserts the day's records and appends the fetch ledger entry.
func (s *StoreStep) Do(ctx context.Context, day *model.DayResult) error {
	if s.db == nil {
		return nil
	}

	if err := s.db.UpsertRecords(ctx, day.Records); err != nil {
		return fmt.Errorf("failed to store records: %w", err)
	}

	entry := &database.FetchLogEntry{
		Date:       day.Date,
		URL:        day.URL,
		StatusCode: day.StatusCode,
		FromCache:  day.FromCache,
		Attempts:   day.Attempts,
		RowCount:   len(day.Records),
	}
	if err := s.db.LogFetch(ctx, entry); err != nil {
		return fmt.Errorf("failed to log fetch: %w", err)
	}
	return nil
}

// WriteStep appends the day's records to the run output.
type WriteStep struct {
	writer report.Writer
}

// NewWriteStep creates a WriteStep using the given writer.
func NewWriteStep(writer report.Writer) *WriteStep {
	return &WriteStep{writer: writer}
}

// Name returns the step identifier.
func (s *WriteStep) Name() string { return "write" }

// Do appends the records to the output in extraction order.
func (s *WriteStep) Do(_ context.Context, day *model.DayResult) error {
	if len(day.Records) == 0 {
		return nil
	}

	if _, err := s.writer.Write(day.Records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}
