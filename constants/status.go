package constants

// DocStatus is the canonical per-document outcome of a batch run.
type DocStatus string

// Stable values (returned over the API and printed by the CLI).
const (
	DocStatusProcessed DocStatus = "PROCESSED" // text extracted and fields parsed
	DocStatusSkipped   DocStatus = "SKIPPED"   // not enough extractable text
	DocStatusFailed    DocStatus = "FAILED"    // extraction error
)
