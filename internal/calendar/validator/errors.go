package validator

import (
	"fmt"

	"calendar-assistant/internal/calendar"
)

// Rules reported in Error.Rule.
const (
	RuleType      = "type"
	RuleRequired  = "required"
	RuleMaxLength = "max_length"
	RuleInjection = "injection"
	RuleFormat    = "format"
	RuleOrder     = "order"
	RuleSpan      = "span"
	RuleEnum      = "enum"
	RuleNoUpdates = "no_updates"
)

// Error names the first rule a value violated. It unwraps to
// calendar.ErrInvalidInput.
type Error struct {
	Field   string
	Rule    string
	Message string
}

// NewError builds an Error with a formatted message.
func NewError(field, rule, format string, args ...any) *Error {
	return &Error{Field: field, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *Error) Unwrap() error {
	return calendar.ErrInvalidInput
}
