package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/lease-abstractor/internal/history"
)

func (s *Service) listHistory(c *gin.Context) {
	entries, err := s.store.List(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"extractions": entries,
		"count":       len(entries),
	})
}

func (s *Service) getHistory(c *gin.Context) {
	entry, err := s.store.Load(c.Param("id"))
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "extraction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Service) deleteHistory(c *gin.Context) {
	if err := s.store.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Service) clearHistory(c *gin.Context) {
	if err := s.store.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
