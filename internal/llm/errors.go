package llm

import "fmt"

// ExtractionErrorCode represents specific extraction error types.
type ExtractionErrorCode string

const (
	ErrProviderUnavailable ExtractionErrorCode = "PROVIDER_UNAVAILABLE"
	ErrRateLimited         ExtractionErrorCode = "RATE_LIMITED"
	ErrBadRequest          ExtractionErrorCode = "BAD_REQUEST"
	ErrMalformedResponse   ExtractionErrorCode = "MALFORMED_RESPONSE"
	ErrEmptyResponse       ExtractionErrorCode = "EMPTY_RESPONSE"
)

// ExtractionError is a structured error for LLM extraction failures.
type ExtractionError struct {
	Code      ExtractionErrorCode
	Message   string
	Retryable bool
	Cause     error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether this error is retryable.
func (e *ExtractionError) IsRetryable() bool {
	return e.Retryable
}

// ClassifyStatus maps an HTTP status from the provider onto a structured
// error. 429 and 5xx are retryable, everything else is terminal.
func ClassifyStatus(status int, cause error) *ExtractionError {
	switch {
	case status == 429:
		return &ExtractionError{Code: ErrRateLimited, Message: "provider rate limit", Retryable: true, Cause: cause}
	case status >= 500:
		return &ExtractionError{Code: ErrProviderUnavailable, Message: fmt.Sprintf("provider returned %d", status), Retryable: true, Cause: cause}
	case status == 0:
		return &ExtractionError{Code: ErrProviderUnavailable, Message: "provider unreachable", Retryable: true, Cause: cause}
	default:
		return &ExtractionError{Code: ErrBadRequest, Message: fmt.Sprintf("provider returned %d", status), Retryable: false, Cause: cause}
	}
}
