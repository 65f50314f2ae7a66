package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/lease-abstractor/internal/common"
	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
	"github.com/joseph-ayodele/lease-abstractor/internal/llm"
)

// ExtractFields implements llm.FieldExtractor using text-only chat/completions.
// The model reply is parsed defensively: code fences are stripped, the JSON
// is validated against the field schema (advisory, logged only), and the
// cleaning pass turns whatever came back into a complete typed record.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (leasefields.Record, []byte, error) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.DocumentText),
		"filename", req.Filename,
	)

	sys := llm.BuildSystemPrompt()
	user := llm.BuildUserPrompt(req.DocumentText)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"max_tokens":      c.cfg.MaxTokens,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": sys},
			{"role": "user", "content": user},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, err := llm.WithRetry(ctx, *c.cfg.Retry, func(ctx context.Context) ([]byte, error) {
		raw, status, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
		if err != nil {
			return nil, llm.ClassifyStatus(status, err)
		}
		return raw, nil
	})
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return leasefields.Record{}, nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return leasefields.Record{}, raw, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return leasefields.Record{}, raw, &llm.ExtractionError{
			Code: llm.ErrEmptyResponse, Message: "no choices in openai response",
		}
	}

	content := llm.StripCodeFences(cc.Choices[0].Message.Content)
	rawContent := []byte(content)

	var fields map[string]any
	if err := json.Unmarshal(rawContent, &fields); err != nil {
		c.log.Error("llm.extract.parse_error",
			"req_id", rid, "error", err, "content", truncateForLog(content),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return leasefields.Record{}, rawContent, &llm.ExtractionError{
			Code: llm.ErrMalformedResponse, Message: "model reply is not valid JSON", Cause: err,
		}
	}

	// Advisory only. Cleaning accepts anything, so a mismatch is worth a
	// warning but never fails the extraction.
	if vErr := llm.ValidateJSONAgainstSchema(leasefields.BuildJSONSchema(), rawContent); vErr != nil {
		c.log.Warn("llm.extract.schema_mismatch", "req_id", rid, "error", vErr)
	}

	fields["source_filename"] = req.Filename
	rec := leasefields.Clean(fields)

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"tenant", rec.TenantName,
		"address", rec.PropertyAddress,
		"start_date", rec.LeaseStartDate,
		"monthly_rent", rec.MonthlyRent,
		"confidence", rec.ConfidenceScore,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, rawContent, nil
}

func truncateForLog(s string) string {
	if len(s) <= 500 {
		return s
	}
	return s[:500] + "…"
}
