package log

import (
	"io"
	"log/slog"
)

// NewLogger creates a new slog.Logger with a text handler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Design decision: The quiet default level is Warn, not Info. A full run
// touches 365 pages and the per-day progress chatter belongs behind
// --verbose; warnings about skipped days must always be visible.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, handlerOptions(verbose)))
}

// NewJSONLogger creates a new slog.Logger with a JSON handler.
// Useful for structured log aggregation; semantics match NewLogger.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, handlerOptions(verbose)))
}

// handlerOptions returns the shared handler options for both formats.
func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
