package llmprovider

import (
	"errors"
	"fmt"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

var (
	// ErrAllProvidersFailed indicates all providers failed to generate content
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrInvalidRequest indicates the request is malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEmptyResponse indicates a provider answered with no text
	ErrEmptyResponse = errors.New("empty response")
)

// ProviderError wraps provider-specific errors
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// statusCode returns the HTTP status carried by a provider API error, or 0.
func statusCode(err error) int {
	var oaAPI *goopenai.APIError
	if errors.As(err, &oaAPI) {
		return oaAPI.HTTPStatusCode
	}
	var oaReq *goopenai.RequestError
	if errors.As(err, &oaReq) {
		return oaReq.HTTPStatusCode
	}
	var gAPI genai.APIError
	if errors.As(err, &gAPI) {
		return gAPI.Code
	}
	var gAPIPtr *genai.APIError
	if errors.As(err, &gAPIPtr) {
		return gAPIPtr.Code
	}
	return 0
}

// isRetryable reports whether another attempt against the same provider can succeed.
// Client errors other than 429 are final.
func isRetryable(err error) bool {
	code := statusCode(err)
	if code >= 400 && code < 500 {
		return code == http.StatusTooManyRequests
	}
	return true
}
