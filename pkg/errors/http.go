package errors

import (
	"errors"
	"fmt"
)

// HTTPError is a transport-level failure: status, stable code, user-safe message.
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]any
}

// NewHTTPError creates an HTTPError without details.
func NewHTTPError(statusCode int, code, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// WithDetails returns a copy of e carrying details.
func (e *HTTPError) WithDetails(details map[string]any) *HTTPError {
	cp := *e
	if len(details) > 0 {
		cp.Details = details
	}
	return &cp
}

// AsHTTPError reports whether err wraps an *HTTPError and returns it.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
