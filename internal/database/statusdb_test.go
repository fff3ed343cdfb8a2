package database

import (
	"context"
	"testing"
	"time"

	"github.com/reactorwatch/psrscan/internal/model"
)

// openTestDB opens a StatusDB in a temporary directory.
func openTestDB(t *testing.T) *StatusDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return db
}

func day(month time.Month, d int) time.Time {
	return time.Date(1999, month, d, 0, 0, 0, 0, time.UTC)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database file with default options", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		if db.Path() == "" {
			t.Error("expected non-empty database path")
		}
	})

	t.Run("missing database without create fails", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if err == nil {
			t.Error("expected error for missing database")
		}
	})

	t.Run("reopening an existing database works", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if err := db.Close(); err != nil {
			t.Fatal(err)
		}

		db2, err := Open(dir, Options{EnableWAL: true})
		if err != nil {
			t.Fatalf("expected reopen to succeed, got %v", err)
		}
		defer db2.Close()
	})
}

func TestUpsertRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("inserts records", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		records := []model.ReportRecord{
			{Date: day(time.January, 5), Unit: "Salem 1", Power: "100"},
			{Date: day(time.January, 5), Unit: "Salem 2", Power: "0", Reason: "REFUELING OUTAGE"},
		}

		if err := db.UpsertRecords(ctx, records); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		count, err := db.CountRecords(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if count != 2 {
			t.Errorf("expected 2 records, got %d", count)
		}
	})

	t.Run("rerunning a day updates instead of duplicating", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		first := []model.ReportRecord{
			{Date: day(time.January, 5), Unit: "Salem 1", Power: "100"},
		}
		second := []model.ReportRecord{
			{Date: day(time.January, 5), Unit: "Salem 1", Power: "75", Reason: "coastdown"},
		}

		if err := db.UpsertRecords(ctx, first); err != nil {
			t.Fatal(err)
		}
		if err := db.UpsertRecords(ctx, second); err != nil {
			t.Fatal(err)
		}

		records, err := db.ListRecords(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].Power != "75" || records[0].Reason != "coastdown" {
			t.Errorf("expected updated values, got %+v", records[0])
		}
	})

	t.Run("same unit on different dates is distinct", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		records := []model.ReportRecord{
			{Date: day(time.January, 5), Unit: "Salem 1", Power: "100"},
			{Date: day(time.January, 6), Unit: "Salem 1", Power: "98"},
		}

		if err := db.UpsertRecords(ctx, records); err != nil {
			t.Fatal(err)
		}

		count, err := db.CountRecords(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if count != 2 {
			t.Errorf("expected 2 records, got %d", count)
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		if err := db.UpsertRecords(ctx, nil); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

func TestListRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)

	// Insert out of date order; listing must come back chronological.
	batches := [][]model.ReportRecord{
		{{Date: day(time.March, 1), Unit: "Hope Creek", Power: "100"}},
		{
			{Date: day(time.January, 5), Unit: "Salem 1", Power: "100"},
			{Date: day(time.January, 5), Unit: "Salem 2", Power: "90"},
		},
	}
	for _, b := range batches {
		if err := db.UpsertRecords(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	records, err := db.ListRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if !records[0].Date.Equal(day(time.January, 5)) || records[0].Unit != "Salem 1" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].Unit != "Salem 2" {
		t.Errorf("unexpected second record: %+v", records[1])
	}
	if !records[2].Date.Equal(day(time.March, 1)) {
		t.Errorf("unexpected third record: %+v", records[2])
	}
}

func TestLogFetch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("failed days appear in ListFailedDates", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)

		entries := []*FetchLogEntry{
			{Date: day(time.February, 2), URL: "http://example.com/a", StatusCode: 200, Attempts: 1, RowCount: 3},
			{Date: day(time.January, 10), URL: "http://example.com/b", StatusCode: 404, Attempts: 1, Error: "HTTP 404"},
			{Date: day(time.January, 3), URL: "http://example.com/c", Attempts: 5, Error: "connection refused"},
		}
		for _, e := range entries {
			if err := db.LogFetch(ctx, e); err != nil {
				t.Fatal(err)
			}
		}

		failed, err := db.ListFailedDates(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(failed) != 2 {
			t.Fatalf("expected 2 failed dates, got %d", len(failed))
		}
		if !failed[0].Equal(day(time.January, 3)) || !failed[1].Equal(day(time.January, 10)) {
			t.Errorf("expected ascending failed dates, got %v", failed)
		}
	})

	t.Run("relogging a day replaces its entry", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)

		if err := db.LogFetch(ctx, &FetchLogEntry{
			Date: day(time.January, 10), URL: "http://example.com/b", Error: "HTTP 503",
		}); err != nil {
			t.Fatal(err)
		}

		// A later successful run clears the error.
		if err := db.LogFetch(ctx, &FetchLogEntry{
			Date: day(time.January, 10), URL: "http://example.com/b",
			StatusCode: 200, Attempts: 1, RowCount: 5,
		}); err != nil {
			t.Fatal(err)
		}

		failed, err := db.ListFailedDates(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(failed) != 0 {
			t.Errorf("expected no failed dates after successful relog, got %v", failed)
		}
	})
}
