package calendar

import "time"

// Event field limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxLocationLength    = 200
	MaxEventSpan         = 30 * 24 * time.Hour
	MaxPromptLength      = 500
)

// Event is a calendar entry owned by exactly one user.
type Event struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// --- Intent ---

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionQuery  Action = "query"
)

// Intent is what the model concluded the caller wants. Exactly one of the
// pointer fields is set, matching Action.
type Intent struct {
	Action  Action
	Message string

	Create *CreateIntent
	Update *UpdateIntent
	Delete *DeleteIntent
	Query  *QueryIntent
}

// EventPayload is a candidate event as the model produced it, before
// validation. Non-string values arrive as "".
type EventPayload struct {
	Title       string
	Description string
	Location    string
	Start       string
	End         string
}

type CreateIntent struct {
	Event EventPayload
}

type UpdateIntent struct {
	EventID string
	Fields  map[string]any
}

type DeleteIntent struct {
	EventID string
}

type QueryIntent struct {
	Results []map[string]any
}

// --- Validated values ---

// EventInput is a validated, sanitized event payload.
type EventInput struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// EventUpdate is a validated partial write set. Nil fields are untouched.
type EventUpdate struct {
	Title       *string
	Description *string
	Location    *string
	Start       *time.Time
	End         *time.Time
}

// IsEmpty reports whether u changes nothing.
func (u EventUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Location == nil && u.Start == nil && u.End == nil
}

// Apply returns e with u's fields written over it.
func (u EventUpdate) Apply(e Event) Event {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.Start != nil {
		e.Start = *u.Start
	}
	if u.End != nil {
		e.End = *u.End
	}
	return e
}

// --- UseCase Inputs ---

type CommandInput struct {
	// Prompt is whatever the caller sent; non-strings are rejected.
	Prompt any
}

type ListEventsInput struct {
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

type ExportInput struct {
	From time.Time
	To   time.Time
}

// --- UseCase Outputs ---

type CommandOutput struct {
	Action  Action
	Event   *Event
	EventID string
	Results []map[string]any
	Message string
}

type ListEventsOutput struct {
	Events []Event
	Limit  int
	Offset int
}

type DetailEventOutput struct {
	Event Event
}

type ExportOutput struct {
	Filename string
	Content  []byte
}
