package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/reactorwatch/psrscan/internal/model"
)

// SummaryWriter outputs a Markdown run summary.
// The summary is a human-facing artifact describing how the run went:
// totals, cache behavior, failures, and a per-month breakdown.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables and headings instead of
// hand-concatenated strings.
type SummaryWriter struct {
	baseWriter
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteSummary outputs the run summary in Markdown format.
func (w *SummaryWriter) WriteSummary(summary *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeTotals(md, summary)
	w.writeMonthly(md, summary)
	w.writeFailures(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the report heading and run metadata.
func (w *SummaryWriter) writeHeader(md *markdown.Markdown, summary *model.RunSummary) {
	md.H1("NRC 1999 Reactor Status Extraction")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Date range", summary.Range.String()},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", summary.Elapsed().Round(time.Second).String()},
		},
	})
	md.PlainText("")
}

// writeTotals writes the run-wide counters.
func (w *SummaryWriter) writeTotals(md *markdown.Markdown, summary *model.RunSummary) {
	md.H2("Totals")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Days processed", strconv.Itoa(summary.DaysProcessed)},
			{"Days failed", strconv.Itoa(summary.DaysFailed)},
			{"Days with no data", strconv.Itoa(summary.DaysEmpty)},
			{"Cache hits", strconv.Itoa(summary.CacheHits)},
			{"Network fetches", strconv.Itoa(summary.NetworkFetches)},
			{"Records written", strconv.Itoa(summary.Records)},
		},
	})
	md.PlainText("")
}

// writeMonthly writes the per-month breakdown table.
func (w *SummaryWriter) writeMonthly(md *markdown.Markdown, summary *model.RunSummary) {
	months := summary.Months()
	if len(months) == 0 {
		return
	}

	md.H2("By Month")
	md.PlainText("")

	rows := make([][]string, 0, len(months))
	for _, m := range months {
		rows = append(rows, []string{
			m.Month.String(),
			strconv.Itoa(m.Days),
			strconv.Itoa(m.Failed),
			strconv.Itoa(m.Records),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Month", "Days", "Failed", "Records"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures lists the failed dates, if any.
func (w *SummaryWriter) writeFailures(md *markdown.Markdown, summary *model.RunSummary) {
	if len(summary.FailedDates) == 0 {
		return
	}

	md.H2("Failed Days")
	md.PlainText("")

	items := make([]string, 0, len(summary.FailedDates))
	for _, d := range summary.FailedDates {
		items = append(items, d.Format("2006-01-02"))
	}
	md.BulletList(items...)
	md.PlainText("")
}
