// Package database opens the event store described by config.DatabaseConfig.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"calendar-assistant/config"
	"calendar-assistant/internal/calendar/repository/sqlstore"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const connectTimeout = 10 * time.Second

var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA synchronous = NORMAL",
}

// Connect opens, pings and migrates the configured database.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, sqlstore.Dialect, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	var (
		db      *sql.DB
		dialect sqlstore.Dialect
		err     error
	)
	switch cfg.Driver {
	case "sqlite":
		db, err = openSQLite(ctx, cfg.DSN)
		dialect = sqlstore.DialectSQLite
	case "postgres":
		db, err = openPostgres(ctx, cfg.DSN)
		dialect = sqlstore.DialectPostgres
	default:
		return nil, "", fmt.Errorf("database.Connect: unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, "", err
	}

	if err := sqlstore.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("database.Connect: %w", err)
	}
	return db, dialect, nil
}

func openSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("database.openSQLite: %w", err)
	}
	// A single writer avoids SQLITE_BUSY and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if !strings.Contains(dsn, ":memory:") {
		for _, p := range sqlitePragmas {
			if _, err := db.ExecContext(ctx, p); err != nil {
				db.Close()
				return nil, fmt.Errorf("database.openSQLite: pragma %q: %w", p, err)
			}
		}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database.openSQLite: ping: %w", err)
	}
	return db, nil
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("database.openPostgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database.openPostgres: ping: %w", err)
	}
	return db, nil
}
