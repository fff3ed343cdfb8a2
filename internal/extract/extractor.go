package extract

import (
	"iter"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/reactorwatch/psrscan/internal/model"
)

// Extractor parses report pages into records.
// The zero value is ready to use; the type exists so callers hold a
// stable dependency rather than free functions.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// columns maps the status table's relevant columns to cell indexes.
type columns struct {
	unit   int
	power  int
	reason int // -1 when the page has no reason column
}

// Records returns a finite, one-pass sequence of records extracted from a
// day's page HTML, in page order. An error is returned only when the HTML
// cannot be parsed at all; a page with no status table yields an empty
// sequence.
func (e *Extractor) Records(date time.Time, html string) (iter.Seq[model.ReportRecord], error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(insertBlockSpacing(html)))
	if err != nil {
		return nil, &ParseError{Date: date, Err: err}
	}

	return func(yield func(model.ReportRecord) bool) {
		stopped := false
		doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
			// Nested tables are reached through their outer table's rows;
			// visiting them again would duplicate records.
			if table.ParentsFiltered("table").Length() > 0 {
				return true
			}

			rows := table.Find("tr")

			headerIdx, cols, ok := findHeader(rows)
			if !ok {
				return true // not the status table, keep scanning
			}

			rows.Slice(headerIdx+1, rows.Length()).EachWithBreak(func(_ int, row *goquery.Selection) bool {
				rec, ok := rowRecord(date, row, cols)
				if !ok {
					return true // malformed row, skip silently
				}
				if !yield(rec) {
					stopped = true
					return false
				}
				return true
			})
			return !stopped
		})
	}, nil
}

// Extract returns all records from a day's page as a slice, in page order.
func (e *Extractor) Extract(date time.Time, html string) ([]model.ReportRecord, error) {
	seq, err := e.Records(date, html)
	if err != nil {
		return nil, err
	}

	var records []model.ReportRecord
	for rec := range seq {
		records = append(records, rec)
	}
	return records, nil
}

// findHeader scans rows for the status table's header row and resolves the
// column indexes. The header must name both a unit and a power column;
// the reason column is optional (some days omit it).
func findHeader(rows *goquery.Selection) (int, columns, bool) {
	found := false
	idx := 0
	cols := columns{reason: -1}

	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		headers := cellTexts(row)

		unit, power := -1, -1
		reason := -1
		for j, h := range headers {
			h = strings.ToLower(h)
			switch {
			case h == "unit" || strings.HasPrefix(h, "unit "):
				unit = j
			case h == "power" || strings.HasPrefix(h, "power"):
				power = j
			case strings.Contains(h, "reason") || strings.Contains(h, "comment"):
				reason = j
			}
		}

		if unit >= 0 && power >= 0 {
			found = true
			idx = i
			cols = columns{unit: unit, power: power, reason: reason}
			return false
		}
		return true
	})

	return idx, cols, found
}

// rowRecord builds a record from a data row, reporting false for rows that
// don't match the expected shape: too few cells, an empty unit cell, or a
// repeated header.
func rowRecord(date time.Time, row *goquery.Selection, cols columns) (model.ReportRecord, bool) {
	cells := cellTexts(row)

	if cols.unit >= len(cells) || cols.power >= len(cells) {
		return model.ReportRecord{}, false
	}

	unit := cells[cols.unit]
	if unit == "" || strings.EqualFold(unit, "unit") {
		return model.ReportRecord{}, false
	}

	reason := ""
	if cols.reason >= 0 && cols.reason < len(cells) {
		reason = cells[cols.reason]
	}

	return model.ReportRecord{
		Date:   date,
		Unit:   unit,
		Power:  cells[cols.power],
		Reason: reason,
	}, true
}

// cellTexts returns the whitespace-normalized text of each td/th cell in a
// row, in document order.
func cellTexts(row *goquery.Selection) []string {
	var texts []string
	row.ChildrenFiltered("td,th").Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, NormalizeSpace(cell.Text()))
	})
	return texts
}

// whitespaceRun matches any run of whitespace, including non-breaking
// spaces, which the source pages use liberally for alignment.
var whitespaceRun = regexp.MustCompile(`[\s\x{00a0}]+`)

// NormalizeSpace collapses whitespace runs to single spaces and trims the
// result. This is the canonical cell-text normalization for extraction.
func NormalizeSpace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// blockTags are elements whose boundaries imply a visual break. goquery's
// Text() concatenates text nodes directly, so "100%<br>coastdown" would
// otherwise collapse into one token.
var blockTags = regexp.MustCompile(`(?i)</?(?:br|p|div|li|tr|td|th)\b[^>]*>`)

// insertBlockSpacing pads block-level tag boundaries with spaces before
// parsing so cell text keeps its word breaks.
func insertBlockSpacing(html string) string {
	return blockTags.ReplaceAllStringFunc(html, func(tag string) string {
		return " " + tag + " "
	})
}
