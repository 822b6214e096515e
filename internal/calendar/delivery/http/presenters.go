package http

import (
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/pkg/response"
)

// --- Request DTOs ---

type commandReq struct {
	Prompt any `json:"prompt"`
}

func (r commandReq) toInput() calendar.CommandInput {
	return calendar.CommandInput{Prompt: r.Prompt}
}

type listReq struct {
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

func (r listReq) toInput() calendar.ListEventsInput {
	return calendar.ListEventsInput{
		From:   r.From,
		To:     r.To,
		Limit:  r.Limit,
		Offset: r.Offset,
	}
}

type exportReq struct {
	From time.Time
	To   time.Time
}

func (r exportReq) toInput() calendar.ExportInput {
	return calendar.ExportInput{From: r.From, To: r.To}
}

// --- Response DTOs ---

type eventResp struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Location    string             `json:"location,omitempty"`
	Start       response.Timestamp `json:"start"`
	End         response.Timestamp `json:"end"`
	CreatedAt   response.Timestamp `json:"created_at"`
	UpdatedAt   response.Timestamp `json:"updated_at"`
}

func newEventResp(e calendar.Event) eventResp {
	return eventResp{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Start:       response.Timestamp(e.Start),
		End:         response.Timestamp(e.End),
		CreatedAt:   response.Timestamp(e.CreatedAt),
		UpdatedAt:   response.Timestamp(e.UpdatedAt),
	}
}

// commandResp is written at the top level, not inside the read envelope.
type commandResp struct {
	Success          bool       `json:"success"`
	Action           string     `json:"action"`
	Event            *eventResp `json:"event,omitempty"`
	EventID          string     `json:"event_id,omitempty"`
	Results          any        `json:"results,omitempty"`
	Message          string     `json:"message"`
	RequestID        string     `json:"requestId"`
	ProcessingTimeMs int64      `json:"processingTimeMs"`
}

func (h *handler) newCommandResp(out calendar.CommandOutput, requestID string, elapsed time.Duration) commandResp {
	resp := commandResp{
		Success:          true,
		Action:           string(out.Action),
		EventID:          out.EventID,
		Message:          out.Message,
		RequestID:        requestID,
		ProcessingTimeMs: elapsed.Milliseconds(),
	}
	if out.Event != nil {
		ev := newEventResp(*out.Event)
		resp.Event = &ev
	}
	if out.Action == calendar.ActionQuery {
		results := out.Results
		if results == nil {
			results = []map[string]any{}
		}
		resp.Results = results
	}
	return resp
}

type listResp struct {
	Events []eventResp `json:"events"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func (h *handler) newListResp(out calendar.ListEventsOutput) listResp {
	events := make([]eventResp, len(out.Events))
	for i, e := range out.Events {
		events[i] = newEventResp(e)
	}
	return listResp{
		Events: events,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}

type detailResp struct {
	Event eventResp `json:"event"`
}

func (h *handler) newDetailResp(out calendar.DetailEventOutput) detailResp {
	return detailResp{Event: newEventResp(out.Event)}
}
