package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// migration is a single versioned schema change. Statements run inside one
// transaction; a migration either fully applies or not at all.
type migration struct {
	version    int
	name       string
	statements []string
}

// migrations is the ordered, append-only schema history. Never edit an
// applied entry; add a new one.
var migrations = []migration{
	{
		version: 1,
		name:    "create products and users",
		statements: []string{
			`CREATE TABLE products (
				id          BIGSERIAL PRIMARY KEY,
				name        TEXT NOT NULL,
				description TEXT NOT NULL,
				price       DOUBLE PRECISION NOT NULL,
				image_url   TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE INDEX idx_products_name ON products (name)`,
			`CREATE TABLE users (
				id            BIGSERIAL PRIMARY KEY,
				username      TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				is_admin      BOOLEAN NOT NULL DEFAULT FALSE
			)`,
		},
	},
	{
		// Two-phase additive change: add nullable, backfill existing rows,
		// then tighten the constraint.
		version: 2,
		name:    "add non-nullable in_stock column",
		statements: []string{
			`ALTER TABLE products ADD COLUMN in_stock BOOLEAN`,
			`UPDATE products SET in_stock = TRUE WHERE in_stock IS NULL`,
			`ALTER TABLE products ALTER COLUMN in_stock SET NOT NULL`,
		},
	},
}

// Migrate applies all pending migrations in version order. Applied versions
// are recorded in schema_migrations, making the call idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		applied, err := isApplied(ctx, db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

func isApplied(ctx context.Context, db *sql.DB, version int) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations WHERE version = $1`, version).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check migration %d: %w", version, err)
	}
	return count > 0, nil
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.version, m.name); err != nil {
		return err
	}
	return tx.Commit()
}
