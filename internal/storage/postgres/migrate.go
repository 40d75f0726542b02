package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version    INT PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// migrations are applied in order; the slice index + 1 is the version.
var migrations = []string{
	`CREATE TABLE users (
  id           BIGSERIAL PRIMARY KEY,
  external_id  TEXT NOT NULL UNIQUE,
  email        TEXT,
  display_name TEXT,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	`CREATE TABLE boards (
  id         BIGSERIAL PRIMARY KEY,
  owner_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  name       VARCHAR(250) NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT boards_owner_id_key UNIQUE (owner_id)
);`,
	`CREATE TABLE sections (
  id       BIGSERIAL PRIMARY KEY,
  board_id BIGINT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
  name     VARCHAR(250) NOT NULL,
  position INT NOT NULL DEFAULT 0
);
CREATE INDEX sections_board_order_idx ON sections (board_id, position, id);`,
	`CREATE TABLE tasks (
  id         BIGSERIAL PRIMARY KEY,
  section_id BIGINT NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
  text       VARCHAR(250) NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX tasks_section_id_idx ON tasks (section_id, id);`,
}

// Migrate applies every pending migration, each in its own transaction, and
// returns the number applied.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}

	applied := 0
	for i := current; i < len(migrations); i++ {
		version := i + 1
		if err := apply(ctx, db, version, migrations[i]); err != nil {
			return applied, fmt.Errorf("migration %d: %w", version, err)
		}
		applied++
	}
	return applied, nil
}

func apply(ctx context.Context, db *sql.DB, version int, stmt string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return err
	}
	return tx.Commit()
}
