package repository

import (
	"context"

	"calendar-assistant/internal/calendar"
)

// Repository is the composed interface for the calendar data store.
type Repository interface {
	EventRepository
}

// EventRepository is owner-scoped CRUD over calendar events. Every method
// that targets a single event filters on both id and owner in one statement.
type EventRepository interface {
	CreateEvent(ctx context.Context, opt CreateEventOptions) (calendar.Event, error)
	// GetOneEvent returns a zero Event (ID == "") when nothing matches.
	GetOneEvent(ctx context.Context, opt GetOneEventOptions) (calendar.Event, error)
	ListEvents(ctx context.Context, opt ListEventsOptions) ([]calendar.Event, error)
	// UpdateEvent returns a zero Event when no row matched (id, owner).
	UpdateEvent(ctx context.Context, opt UpdateEventOptions) (calendar.Event, error)
	// DeleteEvent reports whether a row matched (id, owner).
	DeleteEvent(ctx context.Context, opt DeleteEventOptions) (bool, error)
}
