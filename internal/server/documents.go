package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/lease-abstractor/constants"
	"github.com/joseph-ayodele/lease-abstractor/internal/pipeline"
)

// processDocuments accepts a multipart upload of lease PDFs, stages them on
// disk and runs the extraction batch. Per-document failures are reported in
// the results; only a batch with zero successes is an error status.
func (s *Service) processDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid multipart form: %v", err)})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not stage uploads"})
		return
	}

	var docs []pipeline.Document
	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if !constants.IsAllowedExt(filepath.Ext(name)) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("%s: only PDF files are supported", name),
			})
			return
		}
		dst := filepath.Join(s.cfg.UploadDir, name)
		if err := c.SaveUploadedFile(fh, dst); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("save %s: %v", name, err)})
			return
		}
		docs = append(docs, pipeline.Document{Name: name, Path: dst})
	}

	results, err := s.processor.ProcessBatch(c.Request.Context(), s.sess, docs, nil)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoDocumentsProcessed) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "no documents could be processed",
				"results": results,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "results": results})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":    results,
		"batch_size": s.sess.Len(),
	})
}
