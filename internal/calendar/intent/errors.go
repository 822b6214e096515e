package intent

import (
	"calendar-assistant/internal/calendar"
	"calendar-assistant/pkg/sanitize"
)

// ExcerptLength caps the model output kept on a ParseError.
const ExcerptLength = 200

// ParseError means no strategy recovered a JSON object. Excerpt is for logs
// only and is left out of Error().
type ParseError struct {
	Excerpt string
}

func newParseError(raw string) *ParseError {
	return &ParseError{Excerpt: sanitize.Truncate(raw, ExcerptLength)}
}

func (e *ParseError) Error() string {
	return "intent: no JSON object found in model output"
}

func (e *ParseError) Unwrap() error {
	return calendar.ErrParseFailure
}
