// Package postgres provides the PostgreSQL-backed persistence layer: the
// connection handle, the schema migration runner, and the product and user
// repositories.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register the pgx database/sql driver
)

const (
	defaultTimeout  = 10 * time.Second
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 5 * time.Minute
)

// Config captures the minimal settings required to establish a connection.
type Config struct {
	DSN     string
	Timeout time.Duration
}

// Connect opens a pooled database handle and verifies connectivity with a
// ping. The handle is the process-wide persistence resource: constructed once
// at startup, passed to the repositories, and closed at shutdown. Individual
// requests check connections out of the pool per operation, which bounds each
// request's store work to its own session.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return db, nil
}
