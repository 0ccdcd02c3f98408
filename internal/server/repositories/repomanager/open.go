package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// IsPostgresDSN reports whether dsn names a PostgreSQL database. Anything
// else is handed to SQLite.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to the database named by dsn, verifies the connection,
// applies migrations and returns the matching RepositoryManager.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	var (
		db  *sql.DB
		m   RepositoryManager
		err error
	)

	if IsPostgresDSN(dsn) {
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetConnMaxIdleTime(5 * time.Minute)
		m = NewPostgresRepositoryManager()
	} else {
		db, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		// :memory: databases exist per connection
		db.SetMaxOpenConns(1)
		m = NewSQLiteRepositoryManager()
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}

	if !IsPostgresDSN(dsn) {
		if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return db, m, nil
}
