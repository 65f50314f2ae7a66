package pdftext

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/lease-abstractor/constants"
)

// MinTextChars is the minimum amount of extractable text for a document to
// be processable. Anything shorter is almost always a scanned image.
const MinTextChars = 100

// ErrNotExtractable marks documents with too little machine-readable text.
var ErrNotExtractable = errors.New("document contains no extractable text")

// Extractor pulls plain text out of lease PDFs.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract returns the plain text of every page, joined with blank lines.
// It returns ErrNotExtractable when the document cannot be parsed or its
// trimmed text is shorter than MinTextChars. A lease the library cannot
// read gets the same treatment as a scanned one: the caller skips it, and
// the parse detail stays in the log.
func (e *Extractor) Extract(path string) (string, error) {
	start := time.Now()

	text, pages, err := readAllPages(path)
	if err != nil {
		e.logger.Warn("pdftext.extract.unreadable", "path", path, "error", err)
		return "", ErrNotExtractable
	}

	if len(strings.TrimSpace(text)) < MinTextChars {
		e.logger.Warn("pdftext.extract.insufficient_text",
			"path", path,
			"pages", pages,
			"chars", len(strings.TrimSpace(text)),
		)
		return "", ErrNotExtractable
	}

	e.logger.Info("pdftext.extract.ok",
		"path", path,
		"pages", pages,
		"chars", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// readAllPages walks the page tree and concatenates plain text. The pdf
// library panics on some malformed files, so the whole read is wrapped in
// a recover.
func readAllPages(path string) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	var sb strings.Builder
	pages = reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n\n")
	}
	return sb.String(), pages, nil
}

// Validate checks that the path points at a readable PDF before any
// processing is attempted.
func (e *Extractor) Validate(path string) error {
	if !constants.IsAllowedExt(filepath.Ext(path)) {
		return fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", filepath.Base(path), err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", filepath.Base(path))
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s is empty", filepath.Base(path))
	}
	return nil
}

// Metadata describes a PDF for the review surface.
type Metadata struct {
	Pages     int               `json:"pages"`
	SizeBytes int64             `json:"size_bytes"`
	Info      map[string]string `json:"info,omitempty"`
}

// Metadata returns best-effort page count, file size and the embedded
// document info dictionary (Title, Author, Producer, dates). Failures here
// never block processing; callers treat a zero value as unknown.
func (e *Extractor) Metadata(path string) Metadata {
	var md Metadata
	if info, err := os.Stat(path); err == nil {
		md.SizeBytes = info.Size()
	}
	func() {
		defer func() { recover() }()
		f, reader, err := pdflib.Open(path)
		if err != nil {
			return
		}
		defer f.Close()
		md.Pages = reader.NumPage()
		md.Info = documentInfo(reader)
	}()
	return md
}

// documentInfo copies the string-valued entries of the trailer's Info
// dictionary, when the document carries one.
func documentInfo(reader *pdflib.Reader) map[string]string {
	info := reader.Trailer().Key("Info")
	if info.Kind() != pdflib.Dict {
		return nil
	}
	out := make(map[string]string)
	for _, k := range info.Keys() {
		v := info.Key(k)
		if v.Kind() == pdflib.String {
			if s := v.Text(); s != "" {
				out[k] = s
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
