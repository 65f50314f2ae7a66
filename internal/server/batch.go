package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
)

// getBatch returns the current review batch in extraction order.
func (s *Service) getBatch(c *gin.Context) {
	entries := s.sess.Entries()
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// updateRecord replaces one record with the operator's edits. The payload
// goes through the same cleaning pass as model output, so a stored record is
// always well-formed no matter what the client sent.
func (s *Service) updateRecord(c *gin.Context) {
	filename := c.Param("filename")
	if _, ok := s.sess.Get(filename); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no record for " + filename})
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if _, ok := raw["source_filename"]; !ok {
		raw["source_filename"] = filename
	}

	rec := leasefields.Clean(raw)
	s.sess.UpdateData(filename, rec)

	c.JSON(http.StatusOK, gin.H{"filename": filename, "data": rec})
}

// resetSession drops the current batch so a new set of documents can be
// processed from scratch.
func (s *Service) resetSession(c *gin.Context) {
	s.sess.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
