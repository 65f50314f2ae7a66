package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/lease-abstractor/constants"
	"github.com/joseph-ayodele/lease-abstractor/internal/common"
	"github.com/joseph-ayodele/lease-abstractor/internal/export"
	"github.com/joseph-ayodele/lease-abstractor/internal/history"
	"github.com/joseph-ayodele/lease-abstractor/internal/llm/openai"
	"github.com/joseph-ayodele/lease-abstractor/internal/pdftext"
	"github.com/joseph-ayodele/lease-abstractor/internal/pipeline"
	"github.com/joseph-ayodele/lease-abstractor/internal/session"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir       = flag.String("dir", "", "directory of lease PDFs to process (required)")
		out       = flag.String("out", "", "output directory for XLSX exports (defaults to --dir parent)")
		model     = flag.String("model", "", "OpenAI model override")
		noHistory = flag.Bool("no-history", false, "skip archiving extractions to history")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Dir(*dir)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *model != "" {
		cfg.LLM.Model = *model
	}
	if cfg.LLM.APIKey == "" {
		printError("Error: OPENAI_API_KEY is required\n")
		os.Exit(1)
	}

	docs, err := collectPDFs(*dir)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		printError("Error: no PDF files found in %s\n", *dir)
		os.Exit(1)
	}

	var saver pipeline.HistorySaver
	if !*noHistory {
		store, err := history.NewStore(history.Config{Dir: cfg.Dirs.HistoryDir}, logger)
		if err != nil {
			printError("Error: opening history store: %v\n", err)
			os.Exit(1)
		}
		saver = store
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
	processor := pipeline.NewProcessor(pdftext.NewExtractor(logger), extractor, saver, logger)

	progress := func(done, total int, filename string) {
		if filename != "" {
			fmt.Printf("[%d/%d] %s\n", done+1, total, filename)
		}
	}

	results, batchErr := processor.ProcessBatch(context.Background(), sess, docs, progress)
	for _, res := range results {
		line := fmt.Sprintf("  %s: %s", res.Filename, res.Status)
		if res.Message != "" {
			line += " (" + res.Message + ")"
		}
		fmt.Println(line)
	}
	if batchErr != nil {
		printError("Error: %v\n", batchErr)
		os.Exit(1)
	}

	exports := export.NewService(*out, logger)
	importPath, err := exports.WriteImportFile(sess.Entries())
	if err != nil {
		printError("Error: writing import file: %v\n", err)
		os.Exit(1)
	}
	referencePath, err := exports.WriteReferenceFile(sess.Entries())
	if err != nil {
		printError("Error: writing reference file: %v\n", err)
		os.Exit(1)
	}

	processed := 0
	for _, res := range results {
		if res.Status == constants.DocStatusProcessed {
			processed++
		}
	}

	fmt.Printf("Batch complete!\n")
	fmt.Printf("- Documents: %d\n", len(docs))
	fmt.Printf("- Processed: %d\n", processed)
	fmt.Printf("- Import file: %s\n", importPath)
	fmt.Printf("- Reference file: %s\n", referencePath)
}

// collectPDFs lists the PDF files directly inside dir, sorted by name.
func collectPDFs(dir string) ([]pipeline.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var docs []pipeline.Document
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !constants.IsAllowedExt(filepath.Ext(name)) {
			continue
		}
		docs = append(docs, pipeline.Document{Name: name, Path: filepath.Join(dir, name)})
	}
	sort.Slice(docs, func(i, j int) bool {
		return strings.ToLower(docs[i].Name) < strings.ToLower(docs[j].Name)
	})
	return docs, nil
}
