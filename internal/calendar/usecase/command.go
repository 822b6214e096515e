package usecase

import (
	"context"
	"errors"
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/calendar/intent"
	"calendar-assistant/internal/calendar/repository"
	"calendar-assistant/internal/calendar/validator"
	"calendar-assistant/internal/model"
)

// Execute validates the prompt, asks the model for an intent and applies it.
func (uc *implUseCase) Execute(ctx context.Context, sc model.Scope, input calendar.CommandInput) (calendar.CommandOutput, error) {
	if sc.UserID == "" {
		return calendar.CommandOutput{}, calendar.ErrUnauthorized
	}

	prompt, err := validator.Prompt(input.Prompt)
	if err != nil {
		uc.l.Warnf(ctx, "calendar.usecase.Execute: rejected prompt user=%s: %v", sc.UserID, err)
		return calendar.CommandOutput{}, err
	}

	now := uc.now()
	events, err := uc.contextEvents(ctx, sc, now)
	if err != nil {
		return calendar.CommandOutput{}, err
	}

	system, err := buildSystemPrompt(uc.dateMath.Context(now), events)
	if err != nil {
		uc.l.Errorf(ctx, "calendar.usecase.Execute: build prompt: %v", err)
		return calendar.CommandOutput{}, err
	}

	raw, err := uc.complete(ctx, system, prompt)
	if err != nil {
		return calendar.CommandOutput{}, err
	}

	it, err := uc.extractor.Extract(raw)
	if err != nil {
		var pe *intent.ParseError
		if errors.As(err, &pe) {
			uc.l.Warnf(ctx, "calendar.usecase.Execute: unparseable model output user=%s excerpt=%q", sc.UserID, pe.Excerpt)
		} else {
			uc.l.Warnf(ctx, "calendar.usecase.Execute: malformed intent user=%s: %v", sc.UserID, err)
		}
		return calendar.CommandOutput{}, err
	}

	uc.l.Infof(ctx, "calendar.usecase.Execute: user=%s action=%s", sc.UserID, it.Action)
	return uc.dispatch(ctx, sc, it)
}

// complete calls the model under the configured ceiling. Any failure,
// including timeout or caller cancellation, is a model failure.
func (uc *implUseCase) complete(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.ModelTimeout)
	defer cancel()

	start := time.Now()
	raw, err := uc.llm.Complete(ctx, system, prompt)
	if err != nil {
		uc.l.Errorf(ctx, "calendar.usecase.complete: model call failed after %s: %v", time.Since(start), err)
		return "", calendar.ErrModelFailure
	}
	return raw, nil
}

// contextEvents loads the caller's nearby events for the prompt.
func (uc *implUseCase) contextEvents(ctx context.Context, sc model.Scope, now time.Time) ([]calendar.Event, error) {
	today := uc.dateMath.StartOfDay(now)
	events, err := uc.repo.ListEvents(ctx, repository.ListEventsOptions{
		OwnerID: sc.UserID,
		From:    today.AddDate(0, 0, -uc.cfg.ContextPastDays),
		To:      today.AddDate(0, 0, uc.cfg.ContextFutureDays+1),
		Limit:   uc.cfg.ContextMaxEvents,
	})
	if err != nil {
		uc.l.Errorf(ctx, "calendar.usecase.contextEvents: %v", err)
		return nil, calendar.ErrStorageFailure
	}
	return events, nil
}
