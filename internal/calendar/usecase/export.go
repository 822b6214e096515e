package usecase

import (
	"context"
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/calendar/repository"
	"calendar-assistant/internal/calendar/validator"
	"calendar-assistant/internal/model"

	ical "github.com/arran4/golang-ical"
)

const (
	exportProductID  = "-//calendar-assistant//EN"
	exportFilename   = "calendar.ics"
	exportMaxEvents  = 1000
	exportPastDays   = 30
	exportFutureDays = 365
)

// Export renders the caller's events in [From, To) as an iCalendar file.
// A zero bound defaults to 30 days back or a year ahead.
func (uc *implUseCase) Export(ctx context.Context, sc model.Scope, input calendar.ExportInput) (calendar.ExportOutput, error) {
	if sc.UserID == "" {
		return calendar.ExportOutput{}, calendar.ErrUnauthorized
	}

	today := uc.dateMath.StartOfDay(uc.now())
	from, to := input.From, input.To
	if from.IsZero() {
		from = today.AddDate(0, 0, -exportPastDays)
	}
	if to.IsZero() {
		to = today.AddDate(0, 0, exportFutureDays)
	}
	if !to.After(from) {
		return calendar.ExportOutput{}, validator.NewError("to", validator.RuleOrder, "to must be after from")
	}

	events, err := uc.repo.ListEvents(ctx, repository.ListEventsOptions{
		OwnerID: sc.UserID,
		From:    from,
		To:      to,
		Limit:   exportMaxEvents,
	})
	if err != nil {
		uc.l.Errorf(ctx, "calendar.usecase.Export: user=%s: %v", sc.UserID, err)
		return calendar.ExportOutput{}, calendar.ErrStorageFailure
	}

	return calendar.ExportOutput{
		Filename: exportFilename,
		Content:  []byte(renderICS(events, uc.now())),
	}, nil
}

func renderICS(events []calendar.Event, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(exportProductID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(stamp.UTC())
		ve.SetCreatedTime(e.CreatedAt)
		ve.SetModifiedAt(e.UpdatedAt)
		ve.SetStartAt(e.Start)
		ve.SetEndAt(e.End)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
	}

	return cal.Serialize()
}
