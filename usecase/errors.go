package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrExtractionFailed means the source document yielded no usable text, even
// after the fallback extractor.
var ErrExtractionFailed = errors.New("no text could be extracted from document")

// CoerceError is returned when model output cannot be repaired into valid
// JSON. It carries the original text for diagnostics.
type CoerceError struct {
	Raw string
	Err error
}

func (e *CoerceError) Error() string {
	return fmt.Sprintf("invalid JSON returned by model: %v", e.Err)
}

func (e *CoerceError) Unwrap() error { return e.Err }

// IsRateLimited reports whether an error came back from the provider as a
// throttling signal. Rate limits are treated as systemic, not per-CV.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "rate limit")
}
