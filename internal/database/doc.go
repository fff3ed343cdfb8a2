// Package database provides SQLite-based storage for psrscan.
//
// This package implements the StatusDB, which stores:
//   - Extracted unit status records, keyed by (report date, unit)
//   - A per-day fetch ledger recording how each day was obtained
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
//  1. No external dependencies - the database is a single file
//  2. CGO-free implementation allows easy cross-compilation
//  3. Sufficient performance for a 365-day batch run
//  4. The upsert key makes reruns idempotent for free
//
// The authoritative output remains the pipe-delimited file; the database
// exists so `psrscan export` can re-emit records without network access
// and so failed days are auditable after the run.
package database
