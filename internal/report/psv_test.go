package report

import (
	"strings"
	"testing"
	"time"

	"github.com/reactorwatch/psrscan/internal/model"
)

func TestPSVWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes one line per record in order", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		w := NewPSVWriter(&buf)

		records := []model.ReportRecord{
			{
				Date:  time.Date(1999, time.January, 5, 0, 0, 0, 0, time.UTC),
				Unit:  "Browns Ferry 2",
				Power: "100",
			},
			{
				Date:   time.Date(1999, time.January, 5, 0, 0, 0, 0, time.UTC),
				Unit:   "Brunswick 1",
				Power:  "0",
				Reason: "REFUELING OUTAGE",
			},
		}

		n, err := w.Write(records)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := "1/5/1999|Browns Ferry 2|100|\n1/5/1999|Brunswick 1|0|REFUELING OUTAGE\n"
		if got := buf.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
		if n != len(want) {
			t.Errorf("expected %d bytes written, got %d", len(want), n)
		}
	})

	t.Run("N/A and free text reasons pass through untouched", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		w := NewPSVWriter(&buf)

		d := time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)
		records := []model.ReportRecord{
			{Date: d, Unit: "UNIT1", Power: "100", Reason: "N/A"},
			{Date: d, Unit: "UNIT2", Power: "0", Reason: "Refueling Outage"},
		}

		if _, err := w.Write(records); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := "1/1/1999|UNIT1|100|N/A\n1/1/1999|UNIT2|0|Refueling Outage\n"
		if got := buf.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("empty batch writes nothing", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		w := NewPSVWriter(&buf)

		n, err := w.Write(nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n != 0 || buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("successive batches append", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		w := NewPSVWriter(&buf)

		d1 := time.Date(1999, time.January, 5, 0, 0, 0, 0, time.UTC)
		d2 := time.Date(1999, time.January, 6, 0, 0, 0, 0, time.UTC)

		if _, err := w.Write([]model.ReportRecord{{Date: d1, Unit: "Salem 1", Power: "100"}}); err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]model.ReportRecord{{Date: d2, Unit: "Salem 1", Power: "98"}}); err != nil {
			t.Fatal(err)
		}

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(lines))
		}
		if lines[0] != "1/5/1999|Salem 1|100|" {
			t.Errorf("unexpected first line: %q", lines[0])
		}
		if lines[1] != "1/6/1999|Salem 1|98|" {
			t.Errorf("unexpected second line: %q", lines[1])
		}
	})
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b strings.Builder
	mw := NewMultiWriter(NewPSVWriter(&a), NewPSVWriter(&b))

	records := []model.ReportRecord{{
		Date:  time.Date(1999, time.June, 1, 0, 0, 0, 0, time.UTC),
		Unit:  "Salem 1",
		Power: "100",
	}}

	if _, err := mw.Write(records); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if a.String() != b.String() {
		t.Errorf("expected identical output, got %q and %q", a.String(), b.String())
	}
	if a.Len() == 0 {
		t.Error("expected output to be written")
	}
}
