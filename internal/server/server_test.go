package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/lease-abstractor/internal/export"
	"github.com/joseph-ayodele/lease-abstractor/internal/history"
	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
	"github.com/joseph-ayodele/lease-abstractor/internal/llm"
	"github.com/joseph-ayodele/lease-abstractor/internal/pipeline"
	"github.com/joseph-ayodele/lease-abstractor/internal/session"
)

type stubText struct{}

func (stubText) Validate(string) error          { return nil }
func (stubText) Extract(string) (string, error) { return "LEASE AGREEMENT body text", nil }

type stubFields struct{}

func (stubFields) ExtractFields(_ context.Context, req llm.ExtractRequest) (leasefields.Record, []byte, error) {
	rec := leasefields.Clean(map[string]any{
		"tenant_name":      "Jane Roe",
		"property_address": "12 Oak St",
		"monthly_rent":     1850.0,
		"confidence_score": 0.9,
		"source_filename":  req.Filename,
	})
	return rec, []byte(`{}`), nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	store, err := history.NewStore(history.Config{Dir: t.TempDir()}, nil)
	require.NoError(t, err)

	sess := session.New()
	proc := pipeline.NewProcessor(stubText{}, stubFields{}, store, nil)
	exports := export.NewService(t.TempDir(), nil)

	svc := NewService(Config{UploadDir: t.TempDir()}, sess, proc, exports, store, nil)
	return svc.Router()
}

func do(t *testing.T, router *gin.Engine, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func uploadPDF(t *testing.T, router *gin.Engine, filename string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("files", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 stub content"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return do(t, router, http.MethodPost, "/api/documents/process", buf.Bytes(), mw.FormDataContentType())
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProcessAndReviewFlow(t *testing.T) {
	router := newTestRouter(t)

	w := uploadPDF(t, router, "unit_4b.pdf")
	require.Equal(t, http.StatusOK, w.Code)

	var processed struct {
		Results   []pipeline.Result `json:"results"`
		BatchSize int               `json:"batch_size"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &processed))
	require.Len(t, processed.Results, 1)
	require.Equal(t, 1, processed.BatchSize)
	require.NotEmpty(t, processed.Results[0].HistoryID)

	// Review the batch.
	w = do(t, router, http.MethodGet, "/api/batch", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var batch struct {
		Entries []session.Entry `json:"entries"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &batch))
	require.Equal(t, 1, batch.Count)
	require.Equal(t, "Jane Roe", batch.Entries[0].Data.TenantName)

	// Edit a record; the edit goes through cleaning.
	edit, _ := json.Marshal(map[string]any{
		"tenant_name":  "Jane R. Roe",
		"monthly_rent": "$1,900.00",
	})
	w = do(t, router, http.MethodPut, "/api/batch/unit_4b.pdf", edit, "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/batch", nil, "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &batch))
	require.Equal(t, "Jane R. Roe", batch.Entries[0].Data.TenantName)
	require.Equal(t, float64(1900), batch.Entries[0].Data.MonthlyRent)
	require.Equal(t, "unit_4b.pdf", batch.Entries[0].Data.SourceFilename)

	// Editing an unknown record is a 404.
	w = do(t, router, http.MethodPut, "/api/batch/missing.pdf", edit, "application/json")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProcessRejectsNonPDF(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("files", "notes.txt")
	_, _ = fw.Write([]byte("plain text"))
	_ = mw.Close()

	w := do(t, router, http.MethodPost, "/api/documents/process", buf.Bytes(), mw.FormDataContentType())
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportEndpoints(t *testing.T) {
	router := newTestRouter(t)

	// Empty batch cannot be exported.
	w := do(t, router, http.MethodPost, "/api/exports/import", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	uploadPDF(t, router, "unit_4b.pdf")

	for _, kind := range []string{"import", "reference"} {
		w = do(t, router, http.MethodPost, "/api/exports/"+kind, nil, "")
		require.Equal(t, http.StatusOK, w.Code, kind)

		var created struct {
			Filename string `json:"filename"`
			Records  int    `json:"records"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		require.Equal(t, 1, created.Records)

		w = do(t, router, http.MethodGet, "/api/exports/"+created.Filename, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.NotZero(t, w.Body.Len())
	}
}

func TestHistoryEndpoints(t *testing.T) {
	router := newTestRouter(t)
	uploadPDF(t, router, "unit_4b.pdf")

	w := do(t, router, http.MethodGet, "/api/history", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Extractions []history.IndexEntry `json:"extractions"`
		Count       int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Count)
	id := list.Extractions[0].ID

	// Search that matches nothing.
	w = do(t, router, http.MethodGet, "/api/history?q=zzz", nil, "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 0, list.Count)

	w = do(t, router, http.MethodGet, "/api/history/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var entry history.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	require.Equal(t, "Jane Roe", entry.Data.TenantName)

	w = do(t, router, http.MethodGet, "/api/history/20990101_000000", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodDelete, "/api/history/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	uploadPDF(t, router, "another.pdf")
	w = do(t, router, http.MethodDelete, "/api/history", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/history", nil, "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 0, list.Count)
}

func TestSessionReset(t *testing.T) {
	router := newTestRouter(t)
	uploadPDF(t, router, "unit_4b.pdf")

	w := do(t, router, http.MethodPost, "/api/session/reset", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/batch", nil, "")
	var batch struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &batch))
	require.Equal(t, 0, batch.Count)
}
