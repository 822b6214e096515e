package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/pkg/datemath"
)

// commandSystemPrompt is the fixed instruction block. Time context and the
// caller's events are appended by buildSystemPrompt.
const commandSystemPrompt = `You are a calendar assistant. Turn the user's request into exactly one calendar action.

RULES:
1. Reply with ONE JSON object and nothing else. No markdown, no code fences, no explanation.
2. "action" MUST be exactly one of: "create", "update", "delete", "query".
3. Timestamps use ISO 8601 with an offset (e.g. "2026-02-24T12:00:00+07:00"). Resolve relative dates ("tomorrow", "next friday") with the CURRENT TIME block below.
4. If no duration is given for a new event, make it one hour long.
5. "update" and "delete" MUST reference an "event_id" taken from the EXISTING EVENTS list. Never invent ids.
6. "update" only changes these fields: title, description, location, start, end.
7. "query" answers from EXISTING EVENTS only and never changes anything.
8. "message" is one short sentence for the user describing what you did.

SHAPES:
{"action":"create","event":{"title":"...","description":"...","location":"...","start":"...","end":"..."},"message":"..."}
{"action":"update","event_id":"...","updates":{"start":"...","end":"..."},"message":"..."}
{"action":"delete","event_id":"...","message":"..."}
{"action":"query","results":[{"id":"...","title":"...","start":"...","end":"..."}],"message":"..."}`

// promptEvent is the compact form of an event shown to the model.
type promptEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// buildSystemPrompt renders the full system instruction for one command.
func buildSystemPrompt(tc datemath.TimeContext, events []calendar.Event) (string, error) {
	loc := tc.Now.Location()

	compact := make([]promptEvent, len(events))
	for i, e := range events {
		compact[i] = promptEvent{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Location:    e.Location,
			Start:       e.Start.In(loc).Format(time.RFC3339),
			End:         e.End.In(loc).Format(time.RFC3339),
		}
	}

	data, err := json.Marshal(compact)
	if err != nil {
		return "", fmt.Errorf("marshal context events: %w", err)
	}

	var b strings.Builder
	b.WriteString(commandSystemPrompt)
	b.WriteString("\n\nCURRENT TIME:\n")
	fmt.Fprintf(&b, "now: %s (%s)\n", tc.Now.Format(time.RFC3339), tc.Now.Weekday())
	fmt.Fprintf(&b, "today: %s\n", tc.Today.Format("2006-01-02"))
	fmt.Fprintf(&b, "tomorrow: %s\n", tc.Tomorrow.Format("2006-01-02"))
	fmt.Fprintf(&b, "this week: %s to %s\n", tc.WeekStart.Format("2006-01-02"), tc.WeekEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "timezone: %s\n", tc.Timezone)
	b.WriteString("\nEXISTING EVENTS:\n")
	b.Write(data)

	return b.String(), nil
}
