// Package log provides logger construction helpers built on the standard
// slog package.
//
// This package centralizes:
//   - Configurable log levels with verbose mode support
//   - Text and JSON handler construction with identical semantics
//   - Consistent log formatting across the application
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Info("fetched page", "date", "1999-01-04", "cache", false)
//	slog.SetDefault(logger)
package log
