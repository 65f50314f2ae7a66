package llm

import (
	"context"

	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
)

// ExtractRequest carries one document's text into the model.
type ExtractRequest struct {
	DocumentText string
	Filename     string
}

// FieldExtractor is the interface the batch pipeline depends on. The raw
// JSON reply is returned alongside the cleaned record for audit logging.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (leasefields.Record, []byte, error)
}
