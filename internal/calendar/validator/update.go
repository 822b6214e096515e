package validator

import (
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/pkg/sanitize"
)

// Update builds a write set from a raw field map. Only title, description,
// location, start and end are read; anything else is dropped. Strings are
// sanitized and capped, timestamps that do not parse are dropped, and an
// empty title is dropped.
func Update(raw map[string]any, loc *time.Location) (calendar.EventUpdate, error) {
	var u calendar.EventUpdate

	if s, ok := raw["title"].(string); ok {
		if title := sanitize.Truncate(sanitize.String(s), calendar.MaxTitleLength); title != "" {
			u.Title = &title
		}
	}
	if s, ok := raw["description"].(string); ok {
		desc := sanitize.Truncate(sanitize.String(s), calendar.MaxDescriptionLength)
		u.Description = &desc
	}
	if s, ok := raw["location"].(string); ok {
		location := sanitize.Truncate(sanitize.String(s), calendar.MaxLocationLength)
		u.Location = &location
	}
	if s, ok := raw["start"].(string); ok {
		if t, err := ParseTime(s, loc); err == nil {
			t = t.UTC()
			u.Start = &t
		}
	}
	if s, ok := raw["end"].(string); ok {
		if t, err := ParseTime(s, loc); err == nil {
			t = t.UTC()
			u.End = &t
		}
	}

	if u.IsEmpty() {
		return calendar.EventUpdate{}, NewError("updates", RuleNoUpdates, "no valid updates")
	}
	return u, nil
}
