package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/reactorwatch/psrscan/internal/model"
)

// dbFileName is the SQLite database file name inside the database directory.
const dbFileName = "psrscan.db"

// dateLayout is the ISO form report dates are stored under.
// Lexicographic order equals chronological order, so plain ORDER BY works.
const dateLayout = "2006-01-02"

// StatusDB provides SQLite-based storage for extracted records and the
// per-day fetch ledger. It manages the connection and provides methods
// for the CRUD operations the CLI needs.
type StatusDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures StatusDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	// Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a StatusDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned; `psrscan export` uses this mode so a missing database produces
// a clear message instead of an empty file.
func Open(dbDir string, opts Options) (*StatusDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run `psrscan scrape` first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; the run is sequential anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &StatusDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *StatusDB) Close() error {
	return sdb.db.Close()
}

// Path returns the database file path.
func (sdb *StatusDB) Path() string {
	return sdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (sdb *StatusDB) createTables() error {
	schema := `
	-- Unit status records, one per unit per report date.
	-- The unique key makes reruns idempotent: re-extracting a day
	-- updates rows in place instead of duplicating them.
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_date TEXT NOT NULL,
		unit TEXT NOT NULL,
		power TEXT,
		reason TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(report_date, unit)
	);

	CREATE INDEX IF NOT EXISTS idx_records_date ON records(report_date);
	CREATE INDEX IF NOT EXISTS idx_records_unit ON records(unit);

	-- Fetch ledger, one row per report date, recording how the day's
	-- page was obtained (or why it wasn't).
	CREATE TABLE IF NOT EXISTS fetch_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_date TEXT NOT NULL UNIQUE,
		url TEXT NOT NULL,
		status_code INTEGER,
		from_cache INTEGER NOT NULL DEFAULT 0,
		attempts INTEGER NOT NULL DEFAULT 0,
		row_count INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_fetch_log_date ON fetch_log(report_date);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// UpsertRecords inserts or updates a day's records in one transaction.
// Re-running a day replaces its rows' values without duplicating them.
func (sdb *StatusDB) UpsertRecords(ctx context.Context, records []model.ReportRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := sdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	query := `
	INSERT INTO records (report_date, unit, power, reason)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(report_date, unit) DO UPDATE SET
		power = excluded.power,
		reason = excluded.reason,
		updated_at = CURRENT_TIMESTAMP
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Date.Format(dateLayout),
			rec.Unit,
			rec.Power,
			rec.Reason,
		); err != nil {
			return fmt.Errorf("failed to upsert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// FetchLogEntry is one row of the per-day fetch ledger.
type FetchLogEntry struct {
	// Date is the report date the entry covers.
	Date time.Time

	// URL is the page URL for the date.
	URL string

	// StatusCode is the HTTP status of the fetch; zero for cache hits.
	StatusCode int

	// FromCache indicates the day was served from the on-disk cache.
	FromCache bool

	// Attempts is the number of network requests issued.
	Attempts int

	// RowCount is the number of records extracted for the day.
	RowCount int

	// Error is the failure message for failed days, empty on success.
	Error string
}

// LogFetch inserts or updates the fetch ledger entry for a day.
func (sdb *StatusDB) LogFetch(ctx context.Context, entry *FetchLogEntry) error {
	query := `
	INSERT INTO fetch_log (report_date, url, status_code, from_cache, attempts, row_count, error)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(report_date) DO UPDATE SET
		url = excluded.url,
		status_code = excluded.status_code,
		from_cache = excluded.from_cache,
		attempts = excluded.attempts,
		row_count = excluded.row_count,
		error = excluded.error,
		fetched_at = CURRENT_TIMESTAMP
	`

	_, err := sdb.db.ExecContext(ctx, query,
		entry.Date.Format(dateLayout),
		entry.URL,
		entry.StatusCode,
		boolToInt(entry.FromCache),
		entry.Attempts,
		entry.RowCount,
		entry.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to log fetch: %w", err)
	}
	return nil
}

// ListRecords returns every stored record ordered by report date, then by
// insertion order within a date (which matches page order).
func (sdb *StatusDB) ListRecords(ctx context.Context) ([]model.ReportRecord, error) {
	query := `
	SELECT report_date, unit, power, reason
	FROM records
	ORDER BY report_date, id
	`

	rows, err := sdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []model.ReportRecord
	for rows.Next() {
		var dateStr string
		var rec model.ReportRecord
		var power, reason sql.NullString

		if err := rows.Scan(&dateStr, &rec.Unit, &power, &reason); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			continue // skip rows with unparseable dates rather than failing the export
		}
		rec.Date = date
		rec.Power = power.String
		rec.Reason = reason.String

		records = append(records, rec)
	}

	return records, rows.Err()
}

// CountRecords returns the number of stored records.
func (sdb *StatusDB) CountRecords(ctx context.Context) (int, error) {
	var count int
	if err := sdb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// ListFailedDates returns the dates whose ledger entry records a failure,
// in ascending order.
func (sdb *StatusDB) ListFailedDates(ctx context.Context) ([]time.Time, error) {
	query := `
	SELECT report_date FROM fetch_log
	WHERE error != ''
	ORDER BY report_date
	`

	rows, err := sdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query failed dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var dateStr string
		if err := rows.Scan(&dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}

	return dates, rows.Err()
}

// boolToInt converts a bool to the 0/1 form SQLite stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
