package validator

import (
	"strings"

	"github.com/google/uuid"
)

// EventID checks that s is a well-formed event id and returns its canonical form.
func EventID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewError("event_id", RuleRequired, "event_id is required")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", NewError("event_id", RuleFormat, "event_id is not a valid identifier")
	}
	return id.String(), nil
}
