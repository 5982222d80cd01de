package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"jobcatalog-engine/internal/domain"
)

// ErrCellTooLong is returned when a value does not fit in one spreadsheet
// cell. excelize would otherwise cut it short.
var ErrCellTooLong = errors.New("value exceeds the xlsx cell limit")

var columnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 36}, // title
	{"B", "C", 14},
	{"D", "F", 16},
	{"G", "G", 60}, // details
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx cell: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("xlsx cell %s: %w", cell, err)
	}
	return nil
}

// Format names accepted by the CLI and the HTTP API.
const (
	FormatXLSX   = "xlsx"
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

var headers = []string{"Title", "Posted", "Rank (minutes)", "Type", "Level", "Skill", "Details"}

type Option func(*Service)

// WithProgress is called once per written row.
func WithProgress(fn func()) Option {
	return func(s *Service) { s.progress = fn }
}

// Service writes a view, in view order, to spreadsheet formats.
type Service struct {
	sheet    string
	logger   *slog.Logger
	progress func()
}

func NewService(sheet string, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sheet == "" {
		sheet = "Jobs"
	}
	s := &Service{sheet: sheet, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func row(j domain.Job) []string {
	rank := ""
	if j.Rank().Ranked() {
		rank = strconv.FormatInt(int64(j.Rank()), 10)
	}
	return []string{j.Title, j.Posted, rank, j.Type, j.Level, j.Skill, j.Detail}
}

func (s *Service) tick() {
	if s.progress != nil {
		s.progress()
	}
}

// XLSX returns a workbook with one sheet holding the jobs.
func (s *Service) XLSX(jobs []domain.Job) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	// rename the default sheet rather than leave an empty Sheet1 behind
	if err := f.SetSheetName(f.GetSheetName(0), s.sheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range headers {
		if err := setCell(f, s.sheet, i+1, 1, h); err != nil {
			return nil, err
		}
	}

	for r, j := range jobs {
		for c, v := range row(j) {
			if c == 2 && v != "" {
				if err := setCell(f, s.sheet, c+1, r+2, int64(j.Rank())); err != nil {
					return nil, err
				}
				continue
			}
			if n := utf8.RuneCountInString(v); n > excelize.TotalCellChars {
				return nil, fmt.Errorf("xlsx row %d %s: %d characters: %w", r+2, headers[c], n, ErrCellTooLong)
			}
			if err := setCell(f, s.sheet, c+1, r+2, v); err != nil {
				return nil, err
			}
		}
		s.tick()
	}

	for _, w := range columnWidths {
		if err := f.SetColWidth(s.sheet, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("xlsx column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok", "rows", len(jobs), "elapsed_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

func (s *Service) CSV(w io.Writer, jobs []domain.Job) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, j := range jobs {
		if err := cw.Write(row(j)); err != nil {
			return fmt.Errorf("csv row: %w", err)
		}
		s.tick()
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}
	s.logger.Info("export.csv.ok", "rows", len(jobs))
	return nil
}
