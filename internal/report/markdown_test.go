package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/reactorwatch/psrscan/internal/model"
)

func TestSummaryWriter(t *testing.T) {
	t.Parallel()

	buildSummary := func() *model.RunSummary {
		s := model.NewRunSummary(model.Year1999())

		ok := model.NewDayResult(time.Date(1999, time.January, 5, 0, 0, 0, 0, time.UTC))
		ok.Records = []model.ReportRecord{{Unit: "Salem 1"}, {Unit: "Salem 2"}}
		s.RecordDay(ok)

		cached := model.NewDayResult(time.Date(1999, time.February, 1, 0, 0, 0, 0, time.UTC))
		cached.FromCache = true
		s.RecordDay(cached)

		failed := model.NewDayResult(time.Date(1999, time.March, 10, 0, 0, 0, 0, time.UTC))
		failed.Err = errors.New("HTTP 404")
		s.RecordDay(failed)

		s.Finish()
		return s
	}

	t.Run("renders headings and counters", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		n, err := NewSummaryWriter(&buf).WriteSummary(buildSummary())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n == 0 {
			t.Error("expected non-zero byte count")
		}

		out := buf.String()
		for _, want := range []string{
			"# NRC 1999 Reactor Status Extraction",
			"## Totals",
			"## By Month",
			"## Failed Days",
			"1999-01-01..1999-12-31",
			"Records written",
			"1999-03-10",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("no failures omits the failed days section", func(t *testing.T) {
		t.Parallel()

		s := model.NewRunSummary(model.Year1999())
		ok := model.NewDayResult(time.Date(1999, time.January, 5, 0, 0, 0, 0, time.UTC))
		s.RecordDay(ok)
		s.Finish()

		var buf strings.Builder
		if _, err := NewSummaryWriter(&buf).WriteSummary(s); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if strings.Contains(buf.String(), "Failed Days") {
			t.Error("expected no Failed Days section")
		}
	})

	t.Run("empty run still renders totals", func(t *testing.T) {
		t.Parallel()

		s := model.NewRunSummary(model.Year1999())
		s.Finish()

		var buf strings.Builder
		if _, err := NewSummaryWriter(&buf).WriteSummary(s); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(buf.String(), "## Totals") {
			t.Error("expected Totals section")
		}
		if strings.Contains(buf.String(), "## By Month") {
			t.Error("expected no By Month section for an empty run")
		}
	})
}

func TestCreateOutputFile(t *testing.T) {
	t.Parallel()

	t.Run("creates nested directories", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir() + "/a/b/out.psv"
		f, err := CreateOutputFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer f.Close()

		if _, err := f.WriteString("x\n"); err != nil {
			t.Errorf("expected file to be writable: %v", err)
		}
	})

	t.Run("truncates an existing file", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir() + "/out.psv"

		f, err := CreateOutputFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.WriteString("old contents\n"); err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}

		f2, err := CreateOutputFile(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f2.Close()

		info, err := f2.Stat()
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() != 0 {
			t.Errorf("expected truncated file, got size %d", info.Size())
		}
	})
}
