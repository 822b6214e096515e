package usecase

import (
	"context"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/calendar/repository"
	"calendar-assistant/internal/calendar/validator"
	"calendar-assistant/internal/model"
)

const (
	defaultCreateMessage = "Event created."
	defaultUpdateMessage = "Event updated."
	defaultDeleteMessage = "Event deleted."
	defaultQueryMessage  = "Here is what I found."
)

// dispatch applies exactly one intent. No step retries.
func (uc *implUseCase) dispatch(ctx context.Context, sc model.Scope, it calendar.Intent) (calendar.CommandOutput, error) {
	switch it.Action {
	case calendar.ActionCreate:
		if it.Create != nil {
			return uc.create(ctx, sc, it)
		}
	case calendar.ActionUpdate:
		if it.Update != nil {
			return uc.update(ctx, sc, it)
		}
	case calendar.ActionDelete:
		if it.Delete != nil {
			return uc.delete(ctx, sc, it)
		}
	case calendar.ActionQuery:
		if it.Query != nil {
			return uc.query(it), nil
		}
	}
	return calendar.CommandOutput{}, validator.NewError("action", validator.RuleEnum, "unsupported action %q", it.Action)
}

func (uc *implUseCase) create(ctx context.Context, sc model.Scope, it calendar.Intent) (calendar.CommandOutput, error) {
	in, err := validator.Event(it.Create.Event, uc.loc())
	if err != nil {
		return calendar.CommandOutput{}, err
	}

	ev, err := uc.repo.CreateEvent(ctx, repository.CreateEventOptions{
		ID:          uc.newID(),
		OwnerID:     sc.UserID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Start:       in.Start,
		End:         in.End,
	})
	if err != nil {
		uc.l.Errorf(ctx, "calendar.usecase.create: user=%s: %v", sc.UserID, err)
		return calendar.CommandOutput{}, calendar.ErrStorageFailure
	}

	uc.mirrorUpsert(ctx, ev)

	return calendar.CommandOutput{
		Action:  calendar.ActionCreate,
		Event:   &ev,
		Message: messageOr(it.Message, defaultCreateMessage),
	}, nil
}

func (uc *implUseCase) update(ctx context.Context, sc model.Scope, it calendar.Intent) (calendar.CommandOutput, error) {
	id, err := validator.EventID(it.Update.EventID)
	if err != nil {
		return calendar.CommandOutput{}, err
	}

	existing, err := uc.getOwned(ctx, sc, id)
	if err != nil {
		return calendar.CommandOutput{}, err
	}

	upd, err := validator.Update(it.Update.Fields, uc.loc())
	if err != nil {
		return calendar.CommandOutput{}, err
	}

	merged := upd.Apply(existing)
	if err := validator.Stored(merged); err != nil {
		return calendar.CommandOutput{}, err
	}

	ev, err := uc.repo.UpdateEvent(ctx, repository.UpdateEventOptions{
		ID:          id,
		OwnerID:     sc.UserID,
		Title:       merged.Title,
		Description: merged.Description,
		Location:    merged.Location,
		Start:       merged.Start,
		End:         merged.End,
	})
	if err != nil {
		uc.l.Errorf(ctx, "calendar.usecase.update: user=%s id=%s: %v", sc.UserID, id, err)
		return calendar.CommandOutput{}, calendar.ErrStorageFailure
	}
	if ev.ID == "" {
		return calendar.CommandOutput{}, calendar.ErrNotFound
	}

	uc.mirrorUpsert(ctx, ev)

	return calendar.CommandOutput{
		Action:  calendar.ActionUpdate,
		Event:   &ev,
		Message: messageOr(it.Message, defaultUpdateMessage),
	}, nil
}

func (uc *implUseCase) delete(ctx context.Context, sc model.Scope, it calendar.Intent) (calendar.CommandOutput, error) {
	id, err := validator.EventID(it.Delete.EventID)
	if err != nil {
		return calendar.CommandOutput{}, err
	}

	if _, err := uc.getOwned(ctx, sc, id); err != nil {
		return calendar.CommandOutput{}, err
	}

	deleted, err := uc.repo.DeleteEvent(ctx, repository.DeleteEventOptions{ID: id, OwnerID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "calendar.usecase.delete: user=%s id=%s: %v", sc.UserID, id, err)
		return calendar.CommandOutput{}, calendar.ErrStorageFailure
	}
	if !deleted {
		return calendar.CommandOutput{}, calendar.ErrNotFound
	}

	uc.mirrorDelete(ctx, id)

	return calendar.CommandOutput{
		Action:  calendar.ActionDelete,
		EventID: id,
		Message: messageOr(it.Message, defaultDeleteMessage),
	}, nil
}

func (uc *implUseCase) query(it calendar.Intent) calendar.CommandOutput {
	results := it.Query.Results
	if results == nil {
		results = []map[string]any{}
	}
	return calendar.CommandOutput{
		Action:  calendar.ActionQuery,
		Results: results,
		Message: messageOr(it.Message, defaultQueryMessage),
	}
}

// getOwned fetches (id, owner). A record owned by someone else is reported
// exactly like a missing one.
func (uc *implUseCase) getOwned(ctx context.Context, sc model.Scope, id string) (calendar.Event, error) {
	ev, err := uc.repo.GetOneEvent(ctx, repository.GetOneEventOptions{ID: id, OwnerID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "calendar.usecase.getOwned: user=%s id=%s: %v", sc.UserID, id, err)
		return calendar.Event{}, calendar.ErrStorageFailure
	}
	if ev.ID == "" {
		return calendar.Event{}, calendar.ErrNotFound
	}
	return ev, nil
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
