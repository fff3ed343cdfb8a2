package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/reactorwatch/psrscan/internal/model"
)

// Writer defines the interface for record output.
// Implementations serialize batches of records in various formats.
//
// Design decision: We use an interface so the pipeline can write to files,
// stdout, or several destinations at once with the same API.
type Writer interface {
	// Write outputs the records in the order received.
	// Returns the number of bytes written and any error encountered.
	Write(records []model.ReportRecord) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// Useful for emitting the PSV file and a terminal echo in one pass.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface writes records,
// not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the records to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(records []model.ReportRecord) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(records)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for record writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// CreateOutputFile opens the output file for a fresh run, creating parent
// directories as needed. The file is truncated: a run regenerates the
// output from scratch, and within the run the writers only append.
func CreateOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}
