package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joseph-ayodele/lease-abstractor/constants"
	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
	"github.com/joseph-ayodele/lease-abstractor/internal/session"
)

// Service produces the two spreadsheet exports for a review batch: the flat
// Yardi-style import file and the multi-sheet reference document.
type Service struct {
	outputDir string
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(outputDir string, logger *slog.Logger) *Service {
	if outputDir == "" {
		outputDir = "exports"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{outputDir: outputDir, logger: logger, now: time.Now}
}

// OutputDir returns where export files are written.
func (s *Service) OutputDir() string { return s.outputDir }

// WriteImportFile renders the import workbook into the output directory and
// returns its path. The filename carries a wall-clock timestamp.
func (s *Service) WriteImportFile(batch []session.Entry) (string, error) {
	b, err := s.ImportWorkbook(batch)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("yardi_import_%s.xlsx", s.now().Format("20060102_150405"))
	return s.writeFile(name, b)
}

// WriteReferenceFile renders the reference workbook into the output
// directory and returns its path.
func (s *Service) WriteReferenceFile(batch []session.Entry) (string, error) {
	b, err := s.ReferenceWorkbook(batch)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("lease_reference_%s.xlsx", s.now().Format("20060102_150405"))
	return s.writeFile(name, b)
}

func (s *Service) writeFile(name string, b []byte) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.outputDir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// LateFeeDisplay renders a record's late fee for human-facing output.
func LateFeeDisplay(rec leasefields.Record) string {
	switch constants.LateFeeType(rec.LateFeeType) {
	case constants.LateFeePercentage:
		return formatNumber(rec.LateFeePercentage) + "% of payment"
	case constants.LateFeeFlat:
		return currency(rec.LateFeeFlatAmount)
	default:
		return "Not specified"
	}
}

func currency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// formatNumber trims trailing zeros so 10 renders as "10" and 5.5 as "5.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
