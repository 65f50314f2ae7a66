package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/lease-abstractor/internal/export"
	"github.com/joseph-ayodele/lease-abstractor/internal/history"
	"github.com/joseph-ayodele/lease-abstractor/internal/pipeline"
	"github.com/joseph-ayodele/lease-abstractor/internal/session"
)

// Config for the HTTP service.
type Config struct {
	UploadDir string // where uploaded PDFs are staged
}

// Service wires the batch session, processor, exports and history behind the
// operator HTTP API.
type Service struct {
	cfg       Config
	sess      *session.Session
	processor *pipeline.Processor
	exports   *export.Service
	store     *history.Store
	logger    *slog.Logger
}

func NewService(cfg Config, sess *session.Session, processor *pipeline.Processor, exports *export.Service, store *history.Store, logger *slog.Logger) *Service {
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:       cfg,
		sess:      sess,
		processor: processor,
		exports:   exports,
		store:     store,
		logger:    logger,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Service) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(RequestID())
	router.Use(Recovery(s.logger))
	router.Use(RequestLogger(s.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		api.POST("/documents/process", s.processDocuments)

		api.GET("/batch", s.getBatch)
		api.PUT("/batch/:filename", s.updateRecord)
		api.POST("/session/reset", s.resetSession)

		api.POST("/exports/import", s.createImportExport)
		api.POST("/exports/reference", s.createReferenceExport)
		api.GET("/exports/:name", s.downloadExport)

		api.GET("/history", s.listHistory)
		api.GET("/history/:id", s.getHistory)
		api.DELETE("/history/:id", s.deleteHistory)
		api.DELETE("/history", s.clearHistory)
	}

	return router
}
