package usecase

import (
	"context"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/pkg/gcalendar"
)

// mirrorUpsert copies ev to the external calendar in the background.
func (uc *implUseCase) mirrorUpsert(ctx context.Context, ev calendar.Event) {
	if uc.mirror == nil {
		return
	}

	loc := uc.loc()
	req := gcalendar.EventRequest{
		CalendarID:  uc.cfg.CalendarID,
		ID:          gcalendar.EventID(ev.ID),
		Summary:     ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		StartTime:   ev.Start.In(loc),
		EndTime:     ev.End.In(loc),
		Timezone:    loc.String(),
	}

	uc.goMirror(ctx, "upsert", ev.ID, func(ctx context.Context) error {
		_, err := uc.mirror.UpsertEvent(ctx, req)
		return err
	})
}

// mirrorDelete removes the external copy of id in the background.
func (uc *implUseCase) mirrorDelete(ctx context.Context, id string) {
	if uc.mirror == nil {
		return
	}

	uc.goMirror(ctx, "delete", id, func(ctx context.Context) error {
		return uc.mirror.DeleteEvent(ctx, uc.cfg.CalendarID, gcalendar.EventID(id))
	})
}

// goMirror detaches fn from the request lifetime. Failures are logged only.
func (uc *implUseCase) goMirror(ctx context.Context, op, id string, fn func(context.Context) error) {
	uc.mirrorWG.Add(1)
	go func() {
		defer uc.mirrorWG.Done()

		mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.MirrorTimeout)
		defer cancel()

		if err := fn(mctx); err != nil {
			uc.l.Warnf(mctx, "calendar.usecase.mirror: %s id=%s failed: %v", op, id, err)
		}
	}()
}
