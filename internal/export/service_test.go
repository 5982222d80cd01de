package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"jobcatalog-engine/internal/domain"
)

func jobs(t *testing.T) []domain.Job {
	t.Helper()
	var out []domain.Job
	for _, r := range []struct{ title, posted, level string }{
		{"A", "10 minutes", "Mid"},
		{"B", "2 hours", "Mid"},
		{"C", "bad", "Senior"},
	} {
		title := r.title
		j, err := domain.FromRaw(domain.RawJob{Title: &title, Posted: r.posted, Level: r.level})
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, j)
	}
	return out
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestXLSXRowsInOrder(t *testing.T) {
	rows := 0
	s := NewService("Jobs", quiet(), WithProgress(func() { rows++ }))
	b, err := s.XLSX(jobs(t))
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}
	if rows != 3 {
		t.Fatalf("progress ticks = %d", rows)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if f.GetSheetName(0) != "Jobs" || f.SheetCount != 1 {
		t.Fatalf("sheets = %v", f.GetSheetList())
	}
	got, err := f.GetRows("Jobs")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 || got[0][0] != "Title" {
		t.Fatalf("rows = %v", got)
	}
	if got[1][0] != "A" || got[1][2] != "10" || got[2][2] != "120" || got[3][0] != "C" {
		t.Fatalf("rows = %v", got)
	}
	if len(got[3]) > 2 && got[3][2] != "" {
		t.Fatalf("unranked rank cell = %q", got[3][2])
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := NewService("", quiet()).CSV(&buf, jobs(t)); err != nil {
		t.Fatalf("CSV: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 4 {
		t.Fatalf("records = %v", recs)
	}
	if recs[1][0] != "A" || recs[2][2] != "120" || recs[3][2] != "" || recs[3][4] != "Senior" {
		t.Fatalf("records = %v", recs)
	}
}

func TestXLSXRejectsValueOverCellLimit(t *testing.T) {
	title := "long"
	j, err := domain.FromRaw(domain.RawJob{Title: &title, Detail: strings.Repeat("d", 40000)})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewService("Jobs", quiet()).XLSX([]domain.Job{j})
	if !errors.Is(err, ErrCellTooLong) || b != nil {
		t.Fatalf("expected ErrCellTooLong, got %v (%d bytes)", err, len(b))
	}
	if !strings.Contains(err.Error(), "Details") {
		t.Fatalf("error should name the column: %v", err)
	}
}

func TestXLSXKeepsValueAtCellLimit(t *testing.T) {
	title := "exact"
	detail := strings.Repeat("d", excelize.TotalCellChars)
	j, err := domain.FromRaw(domain.RawJob{Title: &title, Detail: detail})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewService("Jobs", quiet()).XLSX([]domain.Job{j})
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := f.GetCellValue("Jobs", "G2")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(detail) {
		t.Fatalf("detail len = %d, want %d", len(got), len(detail))
	}
}
