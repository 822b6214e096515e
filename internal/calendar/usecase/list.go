package usecase

import (
	"context"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/calendar/repository"
	"calendar-assistant/internal/calendar/validator"
	"calendar-assistant/internal/model"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// List returns the caller's events overlapping [From, To).
func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input calendar.ListEventsInput) (calendar.ListEventsOutput, error) {
	if sc.UserID == "" {
		return calendar.ListEventsOutput{}, calendar.ErrUnauthorized
	}
	if !input.From.IsZero() && !input.To.IsZero() && !input.To.After(input.From) {
		return calendar.ListEventsOutput{}, validator.NewError("to", validator.RuleOrder, "to must be after from")
	}
	if input.Offset < 0 {
		return calendar.ListEventsOutput{}, validator.NewError("offset", validator.RuleFormat, "offset must not be negative")
	}

	limit := input.Limit
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	events, err := uc.repo.ListEvents(ctx, repository.ListEventsOptions{
		OwnerID: sc.UserID,
		From:    input.From,
		To:      input.To,
		Limit:   limit,
		Offset:  input.Offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "calendar.usecase.List: user=%s: %v", sc.UserID, err)
		return calendar.ListEventsOutput{}, calendar.ErrStorageFailure
	}

	return calendar.ListEventsOutput{
		Events: events,
		Limit:  limit,
		Offset: input.Offset,
	}, nil
}

// Detail returns one of the caller's events.
func (uc *implUseCase) Detail(ctx context.Context, sc model.Scope, id string) (calendar.DetailEventOutput, error) {
	if sc.UserID == "" {
		return calendar.DetailEventOutput{}, calendar.ErrUnauthorized
	}

	id, err := validator.EventID(id)
	if err != nil {
		return calendar.DetailEventOutput{}, err
	}

	ev, err := uc.getOwned(ctx, sc, id)
	if err != nil {
		return calendar.DetailEventOutput{}, err
	}
	return calendar.DetailEventOutput{Event: ev}, nil
}
