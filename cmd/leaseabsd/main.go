package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joseph-ayodele/lease-abstractor/internal/common"
	"github.com/joseph-ayodele/lease-abstractor/internal/export"
	"github.com/joseph-ayodele/lease-abstractor/internal/history"
	"github.com/joseph-ayodele/lease-abstractor/internal/llm/openai"
	"github.com/joseph-ayodele/lease-abstractor/internal/pdftext"
	"github.com/joseph-ayodele/lease-abstractor/internal/pipeline"
	"github.com/joseph-ayodele/lease-abstractor/internal/server"
	"github.com/joseph-ayodele/lease-abstractor/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := history.NewStore(history.Config{Dir: cfg.Dirs.HistoryDir}, logger)
	if err != nil {
		logger.Error("opening history store", "error", err)
		os.Exit(1)
	}

	extractor := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	sess := session.New()
	processor := pipeline.NewProcessor(pdftext.NewExtractor(logger), extractor, store, logger)
	exports := export.NewService(cfg.Dirs.ExportDir, logger)

	svc := server.NewService(server.Config{UploadDir: cfg.Dirs.UploadDir}, sess, processor, exports, store, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           svc.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http.serving", "addr", cfg.Server.Addr, "model", cfg.LLM.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
