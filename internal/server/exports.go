package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/lease-abstractor/internal/session"
)

func (s *Service) createImportExport(c *gin.Context) {
	s.createExport(c, s.exports.WriteImportFile)
}

func (s *Service) createReferenceExport(c *gin.Context) {
	s.createExport(c, s.exports.WriteReferenceFile)
}

func (s *Service) createExport(c *gin.Context, write func([]session.Entry) (string, error)) {
	entries := s.sess.Entries()
	if len(entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batch is empty, process documents first"})
		return
	}

	path, err := write(entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filename": filepath.Base(path),
		"path":     path,
		"records":  len(entries),
	})
}

// downloadExport serves a previously generated export by filename.
func (s *Service) downloadExport(c *gin.Context) {
	// Base strips any path traversal from the client-supplied name.
	name := filepath.Base(c.Param("name"))
	if filepath.Ext(name) != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown export " + name})
		return
	}
	path := filepath.Join(s.exports.OutputDir(), name)
	c.FileAttachment(path, name)
}
