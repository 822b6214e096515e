package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

// Timestamps are unix milliseconds so the same DDL serves both dialects.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS calendar_events (
		id          VARCHAR(36)   PRIMARY KEY,
		owner_id    VARCHAR(128)  NOT NULL,
		title       VARCHAR(200)  NOT NULL,
		description VARCHAR(2000) NOT NULL DEFAULT '',
		location    VARCHAR(200)  NOT NULL DEFAULT '',
		start_at    BIGINT        NOT NULL,
		end_at      BIGINT        NOT NULL,
		created_at  BIGINT        NOT NULL,
		updated_at  BIGINT        NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_calendar_events_owner_start ON calendar_events (owner_id, start_at)`,
}

// EnsureSchema creates the calendar tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore.EnsureSchema: %w", err)
		}
	}
	return nil
}
