package report

import (
	"io"
	"strings"

	"github.com/reactorwatch/psrscan/internal/model"
)

// PSVWriter serializes records as pipe-delimited lines, one per record,
// in the order received. This is the primary output format of the tool:
// M/D/YYYY|UNIT|POWER|REASON_OR_COMMENT.
//
// The writer only ever appends to its destination; truncation of a
// previous run's file is decided by the caller when opening it.
type PSVWriter struct {
	baseWriter
}

// NewPSVWriter creates a PSVWriter that outputs to the given writer.
func NewPSVWriter(output io.Writer) *PSVWriter {
	return &PSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write appends one line per record.
// The batch is serialized to a single buffer first so a partial write
// cannot leave a torn line mid-record.
func (w *PSVWriter) Write(records []model.ReportRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	for _, rec := range records {
		sb.WriteString(rec.PSV())
		sb.WriteByte('\n')
	}

	return w.output.Write([]byte(sb.String()))
}
