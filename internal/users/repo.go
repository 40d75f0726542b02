package users

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store resolves an externally authenticated subject to a local user id,
// creating the user row on first sight.
type Store interface {
	EnsureUser(ctx context.Context, u UpsertUser) (int64, error)
}

type UpsertUser struct {
	ExternalID  string
	Email       string
	DisplayName string
}

func (u UpsertUser) validate() error {
	if strings.TrimSpace(u.ExternalID) == "" {
		return fmt.Errorf("external_id required")
	}
	return nil
}

// Repo is the Postgres implementation of Store.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (int64, error) {
	if err := u.validate(); err != nil {
		return 0, err
	}

	const q = `
insert into users (external_id, email, display_name, updated_at)
values ($1, nullif($2,''), nullif($3,''), now())
on conflict (external_id) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  updated_at = now()
returning id;
`
	var id int64
	if err := r.db.QueryRow(ctx, q, u.ExternalID, u.Email, u.DisplayName).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// SQLiteRepo is the SQLite implementation of Store.
type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{db: db}
}

func (r *SQLiteRepo) EnsureUser(ctx context.Context, u UpsertUser) (int64, error) {
	if err := u.validate(); err != nil {
		return 0, err
	}

	const q = `
INSERT INTO users (external_id, email, display_name, updated_at)
VALUES (?, nullif(?, ''), nullif(?, ''), datetime('now'))
ON CONFLICT (external_id) DO UPDATE
SET
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  updated_at = datetime('now')
RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, u.ExternalID, u.Email, u.DisplayName).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
