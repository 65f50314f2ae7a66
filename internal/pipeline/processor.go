package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/lease-abstractor/constants"
	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
	"github.com/joseph-ayodele/lease-abstractor/internal/llm"
	"github.com/joseph-ayodele/lease-abstractor/internal/pdftext"
	"github.com/joseph-ayodele/lease-abstractor/internal/session"
)

// ErrNoDocumentsProcessed is returned when every document in a batch was
// skipped or failed.
var ErrNoDocumentsProcessed = errors.New("no documents produced a record")

// TextExtractor is the slice of pdftext the processor depends on.
type TextExtractor interface {
	Validate(path string) error
	Extract(path string) (string, error)
}

// HistorySaver persists a finished extraction. Optional.
type HistorySaver interface {
	Save(filename string, rec leasefields.Record) (string, error)
}

// Document is one uploaded lease to process.
type Document struct {
	Name string // original filename, used as the batch key
	Path string // location on disk
}

// Result is the per-document outcome of a batch run.
type Result struct {
	Filename  string              `json:"filename"`
	Status    constants.DocStatus `json:"status"`
	Message   string              `json:"message,omitempty"`
	HistoryID string              `json:"history_id,omitempty"`
}

// ProgressFunc is called before each document is processed.
type ProgressFunc func(done, total int, filename string)

// Processor runs uploaded documents through text extraction and the LLM,
// appending successful records to the session. Documents are processed
// sequentially: batches are small and the LLM call dominates, so there is
// nothing to win from fan-out.
type Processor struct {
	text    TextExtractor
	fields  llm.FieldExtractor
	history HistorySaver // nil disables history saving
	logger  *slog.Logger
}

func NewProcessor(text TextExtractor, fields llm.FieldExtractor, history HistorySaver, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{text: text, fields: fields, history: history, logger: logger}
}

// ProcessBatch handles each document independently: a skipped or failed
// document never aborts the batch. The batch as a whole fails only when no
// document produced a record.
func (p *Processor) ProcessBatch(ctx context.Context, sess *session.Session, docs []Document, progress ProgressFunc) ([]Result, error) {
	start := time.Now()
	results := make([]Result, 0, len(docs))
	processed := 0

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if progress != nil {
			progress(i, len(docs), doc.Name)
		}

		res := p.processOne(ctx, sess, doc)
		if res.Status == constants.DocStatusProcessed {
			processed++
		}
		results = append(results, res)
	}
	if progress != nil {
		progress(len(docs), len(docs), "")
	}

	p.logger.Info("pipeline.batch.done",
		"total", len(docs),
		"processed", processed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if processed == 0 {
		return results, fmt.Errorf("batch of %d: %w", len(docs), ErrNoDocumentsProcessed)
	}
	return results, nil
}

func (p *Processor) processOne(ctx context.Context, sess *session.Session, doc Document) Result {
	if err := p.text.Validate(doc.Path); err != nil {
		p.logger.Error("pipeline.doc.invalid", "filename", doc.Name, "error", err)
		return Result{Filename: doc.Name, Status: constants.DocStatusFailed, Message: err.Error()}
	}

	text, err := p.text.Extract(doc.Path)
	if err != nil {
		if errors.Is(err, pdftext.ErrNotExtractable) {
			p.logger.Warn("pipeline.doc.skipped", "filename", doc.Name, "reason", "insufficient text")
			return Result{
				Filename: doc.Name,
				Status:   constants.DocStatusSkipped,
				Message:  "could not extract text, the PDF may be scanned or image-based",
			}
		}
		p.logger.Error("pipeline.doc.text_error", "filename", doc.Name, "error", err)
		return Result{Filename: doc.Name, Status: constants.DocStatusFailed, Message: err.Error()}
	}

	rec, _, err := p.fields.ExtractFields(ctx, llm.ExtractRequest{
		DocumentText: text,
		Filename:     doc.Name,
	})
	if err != nil {
		p.logger.Error("pipeline.doc.extract_error", "filename", doc.Name, "error", err)
		return Result{Filename: doc.Name, Status: constants.DocStatusFailed, Message: err.Error()}
	}

	sess.Append(session.Entry{
		Filename:    doc.Name,
		Data:        rec,
		ExtractedAt: time.Now(),
	})

	res := Result{Filename: doc.Name, Status: constants.DocStatusProcessed}
	if p.history != nil {
		id, err := p.history.Save(doc.Name, rec)
		if err != nil {
			// History is an archive, not part of the batch contract.
			p.logger.Warn("pipeline.doc.history_error", "filename", doc.Name, "error", err)
		} else {
			res.HistoryID = id
		}
	}
	return res
}
