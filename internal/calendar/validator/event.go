package validator

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/pkg/sanitize"

	playground "github.com/go-playground/validator/v10"
)

type eventFields struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Location    string `json:"location" validate:"max=200"`
	Start       string `json:"start" validate:"required"`
	End         string `json:"end" validate:"required"`
}

var fields = newFieldValidator()

func newFieldValidator() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Event validates a candidate payload and returns it normalized. It stops at
// the first violated rule: field presence and length in declaration order,
// then timestamp format, ordering and span.
func Event(p calendar.EventPayload, loc *time.Location) (calendar.EventInput, error) {
	ef := eventFields{
		Title:       sanitize.String(p.Title),
		Description: sanitize.String(p.Description),
		Location:    sanitize.String(p.Location),
		Start:       strings.TrimSpace(p.Start),
		End:         strings.TrimSpace(p.End),
	}

	if err := fields.Struct(ef); err != nil {
		return calendar.EventInput{}, firstFieldError(err)
	}

	start, err := ParseTime(ef.Start, loc)
	if err != nil {
		return calendar.EventInput{}, NewError("start", RuleFormat, "start is not a valid timestamp")
	}
	end, err := ParseTime(ef.End, loc)
	if err != nil {
		return calendar.EventInput{}, NewError("end", RuleFormat, "end is not a valid timestamp")
	}
	if err := Window(start, end); err != nil {
		return calendar.EventInput{}, err
	}

	return calendar.EventInput{
		Title:       ef.Title,
		Description: ef.Description,
		Location:    ef.Location,
		Start:       start.UTC(),
		End:         end.UTC(),
	}, nil
}

// Window checks that end is strictly after start and the span is at most
// calendar.MaxEventSpan.
func Window(start, end time.Time) error {
	if !end.After(start) {
		return NewError("end", RuleOrder, "end must be after start")
	}
	if end.Sub(start) > calendar.MaxEventSpan {
		return NewError("end", RuleSpan, "event cannot span more than 30 days")
	}
	return nil
}

// Stored checks the invariants every persisted event must satisfy.
func Stored(e calendar.Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return NewError("title", RuleRequired, "title is required")
	}
	return Window(e.Start, e.End)
}

func firstFieldError(err error) error {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return NewError("event", RuleFormat, "invalid event payload")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return NewError(fe.Field(), RuleRequired, "%s is required", fe.Field())
	case "max":
		return NewError(fe.Field(), RuleMaxLength, "%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return NewError(fe.Field(), fe.Tag(), "%s is invalid", fe.Field())
	}
}
