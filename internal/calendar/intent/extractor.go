// Package intent recovers a structured Intent from free-form model output.
package intent

import (
	"strings"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/calendar/validator"
	"calendar-assistant/pkg/sanitize"
)

const (
	MaxMessageLength = 1000
	MaxQueryResults  = 100
)

// Extractor tries its strategies in order and shape-checks the first object
// any of them recovers.
type Extractor struct {
	strategies []Strategy
}

// New creates an Extractor. With no strategies it uses DefaultStrategies.
func New(strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Extractor{strategies: strategies}
}

// Recover returns the first object recovered and the strategy that found it.
func (e *Extractor) Recover(raw string) (map[string]any, string, error) {
	for _, s := range e.strategies {
		if obj, ok := s.Recover(raw); ok {
			return obj, s.Name, nil
		}
	}
	return nil, "", newParseError(raw)
}

// Extract recovers and shape-checks an Intent. Unrecoverable text yields a
// *ParseError; a recovered object with the wrong shape yields a
// *validator.Error.
func (e *Extractor) Extract(raw string) (calendar.Intent, error) {
	obj, _, err := e.Recover(raw)
	if err != nil {
		return calendar.Intent{}, err
	}
	return Build(obj)
}

// Build converts a decoded object into an Intent.
func Build(obj map[string]any) (calendar.Intent, error) {
	action := calendar.Action(strings.ToLower(strings.TrimSpace(stringField(obj["action"]))))
	out := calendar.Intent{
		Action:  action,
		Message: sanitize.Truncate(sanitize.Any(obj["message"]), MaxMessageLength),
	}

	switch action {
	case calendar.ActionCreate:
		ev, ok := obj["event"].(map[string]any)
		if !ok {
			return calendar.Intent{}, validator.NewError("event", validator.RuleRequired, "create requires an event object")
		}
		out.Create = &calendar.CreateIntent{Event: calendar.EventPayload{
			Title:       stringField(ev["title"]),
			Description: stringField(ev["description"]),
			Location:    stringField(ev["location"]),
			Start:       stringField(ev["start"]),
			End:         stringField(ev["end"]),
		}}

	case calendar.ActionUpdate:
		fields, ok := obj["updates"].(map[string]any)
		if !ok {
			fields, ok = obj["event"].(map[string]any)
		}
		if !ok {
			return calendar.Intent{}, validator.NewError("updates", validator.RuleRequired, "update requires an updates object")
		}
		out.Update = &calendar.UpdateIntent{EventID: eventID(obj), Fields: fields}

	case calendar.ActionDelete:
		out.Delete = &calendar.DeleteIntent{EventID: eventID(obj)}

	case calendar.ActionQuery:
		results, err := queryResults(obj["results"])
		if err != nil {
			return calendar.Intent{}, err
		}
		out.Query = &calendar.QueryIntent{Results: results}

	case "":
		return calendar.Intent{}, validator.NewError("action", validator.RuleRequired, "action is required")

	default:
		return calendar.Intent{}, validator.NewError("action", validator.RuleEnum, "action must be one of create, update, delete, query")
	}

	return out, nil
}

func queryResults(v any) ([]map[string]any, error) {
	if v == nil {
		return []map[string]any{}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, validator.NewError("results", validator.RuleType, "results must be an array")
	}
	if len(list) > MaxQueryResults {
		list = list[:MaxQueryResults]
	}

	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, validator.NewError("results", validator.RuleType, "results must contain objects")
		}
		out = append(out, sanitizeResult(m))
	}
	return out, nil
}

func sanitizeResult(m map[string]any) map[string]any {
	clean := make(map[string]any, len(m))
	for k, v := range m {
		clean[k] = sanitizeValue(v)
	}
	return clean
}

// sanitizeValue walks nested objects and arrays so no string escapes cleaning.
func sanitizeValue(v any) any {
	switch t := v.(type) {
	case string:
		return sanitize.String(t)
	case map[string]any:
		return sanitizeResult(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = sanitizeValue(item)
		}
		return out
	default:
		return v
	}
}

func eventID(obj map[string]any) string {
	if id := stringField(obj["event_id"]); id != "" {
		return id
	}
	return stringField(obj["eventId"])
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}
