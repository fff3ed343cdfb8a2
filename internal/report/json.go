package report

import (
	"encoding/json"
	"io"

	"github.com/reactorwatch/psrscan/internal/model"
)

// JSONWriter outputs records in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because it's part of the standard library and sufficient
// for a flat array of records.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the records as a JSON array.
// Unlike the PSV writer this is a whole-document format, so it is meant
// for one-shot export rather than per-day appending.
func (w *JSONWriter) Write(records []model.ReportRecord) (int, error) {
	// Emit [] rather than null for an empty set
	if records == nil {
		records = []model.ReportRecord{}
	}

	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(records, "", "  ")
	} else {
		data, err = json.Marshal(records)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
