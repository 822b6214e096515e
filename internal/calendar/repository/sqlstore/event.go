package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"calendar-assistant/internal/calendar"
	repo "calendar-assistant/internal/calendar/repository"
)

const eventColumns = `id, owner_id, title, description, location, start_at, end_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (calendar.Event, error) {
	var e calendar.Event
	var startMs, endMs, createdMs, updatedMs int64
	if err := s.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.Location, &startMs, &endMs, &createdMs, &updatedMs); err != nil {
		return calendar.Event{}, err
	}
	e.Start = fromMillis(startMs)
	e.End = fromMillis(endMs)
	e.CreatedAt = fromMillis(createdMs)
	e.UpdatedAt = fromMillis(updatedMs)
	return e, nil
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// CreateEvent inserts a new event row and returns the stored entity.
func (r *implRepository) CreateEvent(ctx context.Context, opt repo.CreateEventOptions) (calendar.Event, error) {
	if opt.ID == "" || opt.OwnerID == "" {
		return calendar.Event{}, repo.ErrMissingScope
	}

	now := r.now().UnixMilli()
	query := fmt.Sprintf(`INSERT INTO calendar_events (%s) VALUES (%s) RETURNING %s`,
		eventColumns, r.phList(1, 9), eventColumns)

	e, err := scanEvent(r.db.QueryRowContext(ctx, query,
		opt.ID, opt.OwnerID, opt.Title, opt.Description, opt.Location,
		opt.Start.UnixMilli(), opt.End.UnixMilli(), now, now,
	))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateEvent"), err)
		return calendar.Event{}, repo.ErrFailedToInsert
	}
	return e, nil
}

// GetOneEvent retrieves one event scoped to (id, owner).
// Returns zero-value Event (ID == "") when not found.
func (r *implRepository) GetOneEvent(ctx context.Context, opt repo.GetOneEventOptions) (calendar.Event, error) {
	if opt.ID == "" || opt.OwnerID == "" {
		return calendar.Event{}, repo.ErrMissingScope
	}

	query := fmt.Sprintf(`SELECT %s FROM calendar_events WHERE id = %s AND owner_id = %s LIMIT 1`,
		eventColumns, r.ph(1), r.ph(2))

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, opt.ID, opt.OwnerID))
	if errors.Is(err, sql.ErrNoRows) {
		return calendar.Event{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneEvent"), err)
		return calendar.Event{}, repo.ErrFailedToGet
	}
	return e, nil
}

// ListEvents returns one owner's events ordered by start.
func (r *implRepository) ListEvents(ctx context.Context, opt repo.ListEventsOptions) ([]calendar.Event, error) {
	if opt.OwnerID == "" {
		return nil, repo.ErrMissingScope
	}

	where, args := r.buildListQuery(opt)
	query := fmt.Sprintf(`SELECT %s FROM calendar_events %s`, eventColumns, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListEvents"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	events := make([]calendar.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListEvents"), err)
			return nil, repo.ErrFailedToList
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListEvents"), err)
		return nil, repo.ErrFailedToList
	}
	return events, nil
}

// UpdateEvent overwrites an event scoped to (id, owner) and returns the new row.
// Returns zero-value Event when no row matched.
func (r *implRepository) UpdateEvent(ctx context.Context, opt repo.UpdateEventOptions) (calendar.Event, error) {
	if opt.ID == "" || opt.OwnerID == "" {
		return calendar.Event{}, repo.ErrMissingScope
	}

	query := fmt.Sprintf(`
		UPDATE calendar_events
		SET title = %s, description = %s, location = %s, start_at = %s, end_at = %s, updated_at = %s
		WHERE id = %s AND owner_id = %s
		RETURNING %s`,
		r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), r.ph(6), r.ph(7), r.ph(8), eventColumns)

	e, err := scanEvent(r.db.QueryRowContext(ctx, query,
		opt.Title, opt.Description, opt.Location, opt.Start.UnixMilli(), opt.End.UnixMilli(),
		r.now().UnixMilli(), opt.ID, opt.OwnerID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return calendar.Event{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateEvent"), err)
		return calendar.Event{}, repo.ErrFailedToUpdate
	}
	return e, nil
}

// DeleteEvent removes an event scoped to (id, owner).
func (r *implRepository) DeleteEvent(ctx context.Context, opt repo.DeleteEventOptions) (bool, error) {
	if opt.ID == "" || opt.OwnerID == "" {
		return false, repo.ErrMissingScope
	}

	query := fmt.Sprintf(`DELETE FROM calendar_events WHERE id = %s AND owner_id = %s`, r.ph(1), r.ph(2))
	res, err := r.db.ExecContext(ctx, query, opt.ID, opt.OwnerID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteEvent"), err)
		return false, repo.ErrFailedToDelete
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s rows affected: %v", r.dsn("DeleteEvent"), err)
		return false, repo.ErrFailedToDelete
	}
	return n > 0, nil
}
