// Package postgres opens the backing-store connection pool and owns the
// table bootstrap. Stores treat the pool as a shared, connection-pooled
// handle and never hold a connection across calls.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open creates a database/sql pool over the pgx driver.
func Open(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(16)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// Bootstrap creates the document tables when absent. Real schema evolution
// is handled by external migrations; this only covers first boot and tests.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (user_id TEXT PRIMARY KEY, doc JSONB NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS roles (role_id TEXT PRIMARY KEY, doc JSONB NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS groups (group_id TEXT PRIMARY KEY, doc JSONB NOT NULL)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

// Health checks connectivity with a no-op round trip. The readiness monitor
// uses this as its probe.
func Health(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}
