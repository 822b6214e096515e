package gcalendar

import "time"

// DefaultCalendarID targets the authenticated account's primary calendar.
const DefaultCalendarID = "primary"

// EventRequest is the input for writing a Google Calendar event under a caller-chosen ID.
type EventRequest struct {
	CalendarID  string
	ID          string
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "Asia/Ho_Chi_Minh"
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
}
