package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/joseph-ayodele/lease-abstractor/constants"
	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
	"github.com/joseph-ayodele/lease-abstractor/internal/llm"
	"github.com/joseph-ayodele/lease-abstractor/internal/pdftext"
	"github.com/joseph-ayodele/lease-abstractor/internal/session"
)

type fakeText struct {
	texts map[string]string // path -> text; missing means not extractable
	fail  map[string]error
}

func (f *fakeText) Validate(path string) error { return nil }

func (f *fakeText) Extract(path string) (string, error) {
	if err, ok := f.fail[path]; ok {
		return "", err
	}
	text, ok := f.texts[path]
	if !ok {
		return "", pdftext.ErrNotExtractable
	}
	return text, nil
}

type fakeExtractor struct {
	failFor map[string]error // filename -> error
	calls   int
}

func (f *fakeExtractor) ExtractFields(_ context.Context, req llm.ExtractRequest) (leasefields.Record, []byte, error) {
	f.calls++
	if err, ok := f.failFor[req.Filename]; ok {
		return leasefields.Record{}, nil, err
	}
	rec := leasefields.Clean(map[string]any{
		"tenant_name":     "Tenant for " + req.Filename,
		"source_filename": req.Filename,
	})
	return rec, []byte(`{}`), nil
}

type fakeHistory struct {
	saved []string
	err   error
}

func (f *fakeHistory) Save(filename string, _ leasefields.Record) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, filename)
	return fmt.Sprintf("id_%d", len(f.saved)), nil
}

func TestProcessBatchMixedOutcomes(t *testing.T) {
	text := &fakeText{
		texts: map[string]string{
			"/tmp/good.pdf":    "a proper lease body",
			"/tmp/llmfail.pdf": "another lease body",
		},
	}
	fields := &fakeExtractor{
		failFor: map[string]error{
			"llmfail.pdf": &llm.ExtractionError{Code: llm.ErrProviderUnavailable, Message: "boom"},
		},
	}
	hist := &fakeHistory{}
	sess := session.New()

	docs := []Document{
		{Name: "good.pdf", Path: "/tmp/good.pdf"},
		{Name: "scanned.pdf", Path: "/tmp/scanned.pdf"},
		{Name: "llmfail.pdf", Path: "/tmp/llmfail.pdf"},
	}

	results, err := NewProcessor(text, fields, hist, nil).ProcessBatch(context.Background(), sess, docs, nil)
	if err != nil {
		t.Fatalf("batch with one success should not error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	wantStatus := []constants.DocStatus{
		constants.DocStatusProcessed,
		constants.DocStatusSkipped,
		constants.DocStatusFailed,
	}
	for i, want := range wantStatus {
		if results[i].Status != want {
			t.Errorf("results[%d].Status = %s, want %s", i, results[i].Status, want)
		}
	}

	if sess.Len() != 1 {
		t.Errorf("session entries = %d, want 1", sess.Len())
	}
	if entry, ok := sess.Get("good.pdf"); !ok || entry.Data.TenantName != "Tenant for good.pdf" {
		t.Errorf("session entry = %+v, ok=%v", entry, ok)
	}

	// The scanned document never reaches the LLM.
	if fields.calls != 2 {
		t.Errorf("extractor calls = %d, want 2", fields.calls)
	}

	if len(hist.saved) != 1 || hist.saved[0] != "good.pdf" {
		t.Errorf("history saves = %v", hist.saved)
	}
	if results[0].HistoryID == "" {
		t.Error("processed result missing history id")
	}
}

// A file with a .pdf extension that the parser cannot read takes the same
// skip-with-warning path as a scanned document, not the failure path.
func TestProcessBatchUnparseablePDFIsSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(path, []byte("not a real pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	fields := &fakeExtractor{}
	sess := session.New()
	results, err := NewProcessor(pdftext.NewExtractor(nil), fields, nil, nil).
		ProcessBatch(context.Background(), sess, []Document{{Name: "broken.pdf", Path: path}}, nil)
	if !errors.Is(err, ErrNoDocumentsProcessed) {
		t.Fatalf("err = %v, want ErrNoDocumentsProcessed", err)
	}
	if results[0].Status != constants.DocStatusSkipped {
		t.Errorf("status = %s, want %s", results[0].Status, constants.DocStatusSkipped)
	}
	if fields.calls != 0 {
		t.Errorf("extractor calls = %d, want 0", fields.calls)
	}
}

func TestProcessBatchAllFailed(t *testing.T) {
	text := &fakeText{} // nothing extractable
	sess := session.New()

	docs := []Document{{Name: "a.pdf", Path: "/tmp/a.pdf"}}
	_, err := NewProcessor(text, &fakeExtractor{}, nil, nil).ProcessBatch(context.Background(), sess, docs, nil)
	if !errors.Is(err, ErrNoDocumentsProcessed) {
		t.Errorf("err = %v, want ErrNoDocumentsProcessed", err)
	}
}

func TestProcessBatchProgress(t *testing.T) {
	text := &fakeText{texts: map[string]string{"/tmp/a.pdf": "lease", "/tmp/b.pdf": "lease"}}
	sess := session.New()

	var steps []string
	progress := func(done, total int, filename string) {
		steps = append(steps, fmt.Sprintf("%d/%d %s", done, total, filename))
	}

	docs := []Document{
		{Name: "a.pdf", Path: "/tmp/a.pdf"},
		{Name: "b.pdf", Path: "/tmp/b.pdf"},
	}
	if _, err := NewProcessor(text, &fakeExtractor{}, nil, nil).ProcessBatch(context.Background(), sess, docs, progress); err != nil {
		t.Fatal(err)
	}

	want := []string{"0/2 a.pdf", "1/2 b.pdf", "2/2 "}
	if len(steps) != len(want) {
		t.Fatalf("steps = %v", steps)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("steps[%d] = %q, want %q", i, steps[i], want[i])
		}
	}
}

func TestProcessBatchHistoryFailureIsNotFatal(t *testing.T) {
	text := &fakeText{texts: map[string]string{"/tmp/a.pdf": "lease"}}
	hist := &fakeHistory{err: errors.New("disk full")}
	sess := session.New()

	results, err := NewProcessor(text, &fakeExtractor{}, hist, nil).
		ProcessBatch(context.Background(), sess, []Document{{Name: "a.pdf", Path: "/tmp/a.pdf"}}, nil)
	if err != nil {
		t.Fatalf("history failure aborted the batch: %v", err)
	}
	if results[0].Status != constants.DocStatusProcessed {
		t.Errorf("status = %s", results[0].Status)
	}
	if results[0].HistoryID != "" {
		t.Error("history id set despite save failure")
	}
}

func TestProcessBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	text := &fakeText{texts: map[string]string{"/tmp/a.pdf": "lease"}}
	_, err := NewProcessor(text, &fakeExtractor{}, nil, nil).
		ProcessBatch(ctx, session.New(), []Document{{Name: "a.pdf", Path: "/tmp/a.pdf"}}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
