package repository

import "time"

// CreateEventOptions holds a fully validated event to insert.
type CreateEventOptions struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// GetOneEventOptions selects one event. Both fields are required.
type GetOneEventOptions struct {
	ID      string
	OwnerID string
}

// ListEventsOptions lists one owner's events overlapping [From, To).
// Zero From or To leaves that side open.
type ListEventsOptions struct {
	OwnerID string
	From    time.Time
	To      time.Time
	Limit   int
	Offset  int
}

// UpdateEventOptions carries the complete new state of an event.
type UpdateEventOptions struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// DeleteEventOptions selects the event to delete.
type DeleteEventOptions struct {
	ID      string
	OwnerID string
}
