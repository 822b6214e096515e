package sqlstore

import (
	"fmt"
	"strings"

	repo "calendar-assistant/internal/calendar/repository"
)

// buildListQuery builds the WHERE + ORDER + LIMIT + OFFSET clause for ListEvents.
// An event overlaps [From, To) when it ends after From and starts before To.
func (r *implRepository) buildListQuery(opt repo.ListEventsOptions) (string, []any) {
	var parts []string
	conditions := []string{fmt.Sprintf("owner_id = %s", r.ph(1))}
	args := []any{opt.OwnerID}
	idx := 2

	if !opt.From.IsZero() {
		conditions = append(conditions, fmt.Sprintf("end_at > %s", r.ph(idx)))
		args = append(args, opt.From.UnixMilli())
		idx++
	}
	if !opt.To.IsZero() {
		conditions = append(conditions, fmt.Sprintf("start_at < %s", r.ph(idx)))
		args = append(args, opt.To.UnixMilli())
		idx++
	}

	parts = append(parts, "WHERE "+strings.Join(conditions, " AND "))
	parts = append(parts, "ORDER BY start_at ASC, id ASC")

	if opt.Limit > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT %s", r.ph(idx)))
		args = append(args, opt.Limit)
		idx++
		if opt.Offset > 0 {
			parts = append(parts, fmt.Sprintf("OFFSET %s", r.ph(idx)))
			args = append(args, opt.Offset)
		}
	}

	return strings.Join(parts, " "), args
}
