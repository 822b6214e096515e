package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"calendar-assistant/internal/calendar/repository"
	"calendar-assistant/pkg/log"
)

// Dialect selects placeholder syntax.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

type implRepository struct {
	db      *sql.DB
	dialect Dialect
	l       log.Logger
	now     func() time.Time
}

// New creates a SQL-backed Repository for the calendar domain.
func New(db *sql.DB, dialect Dialect, l log.Logger) repository.Repository {
	if db == nil {
		panic("calendar/repository/sqlstore: db is required")
	}
	if dialect != DialectSQLite {
		dialect = DialectPostgres
	}
	return &implRepository{db: db, dialect: dialect, l: l, now: time.Now}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("calendar/repository/sqlstore.%s", method)
}

// ph returns the n-th (1-based) bind placeholder.
func (r *implRepository) ph(n int) string {
	if r.dialect == DialectSQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

// phList returns placeholders first..first+count-1 joined by commas.
func (r *implRepository) phList(first, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = r.ph(first + i)
	}
	return strings.Join(parts, ", ")
}
