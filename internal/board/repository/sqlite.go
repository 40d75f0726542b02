package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
)

// DBTX is the common interface satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX  = (*sql.DB)(nil)
	_ DBTX  = (*sql.Tx)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Tx    = (*sqliteTx)(nil)
)

// SQLiteStore implements Store on database/sql with the modernc SQLite driver.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, &sqliteTx{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ReadTx runs fn in a deferred transaction; SQLite pins the read snapshot at
// the first statement.
func (s *SQLiteStore) ReadTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return s.WithinTx(ctx, fn)
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type sqliteTx struct {
	q DBTX
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}

func (t *sqliteTx) BoardByOwner(ctx context.Context, ownerID int64) (*domain.Board, error) {
	const q = `SELECT id, owner_id, name FROM boards WHERE owner_id = ?`
	var b domain.Board
	if err := t.q.QueryRowContext(ctx, q, ownerID).Scan(&b.ID, &b.OwnerID, &b.Name); err != nil {
		return nil, notFound(err, "board for user %d", ownerID)
	}
	return &b, nil
}

func (t *sqliteTx) BoardByID(ctx context.Context, id int64) (*domain.Board, error) {
	const q = `SELECT id, owner_id, name FROM boards WHERE id = ?`
	var b domain.Board
	if err := t.q.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.OwnerID, &b.Name); err != nil {
		return nil, notFound(err, "board %d", id)
	}
	return &b, nil
}

func (t *sqliteTx) InsertBoardIfAbsent(ctx context.Context, ownerID int64, name string) (*domain.Board, bool, error) {
	const q = `
INSERT INTO boards (owner_id, name) VALUES (?, ?)
ON CONFLICT (owner_id) DO NOTHING
RETURNING id, owner_id, name`
	var b domain.Board
	err := t.q.QueryRowContext(ctx, q, ownerID, name).Scan(&b.ID, &b.OwnerID, &b.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &b, true, nil
}

func (t *sqliteTx) Boards(ctx context.Context) ([]domain.Board, error) {
	rows, err := t.q.QueryContext(ctx, `SELECT id, owner_id, name FROM boards ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Board, 0, 16)
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Name); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (t *sqliteTx) InsertSection(ctx context.Context, boardID int64, name string, position int) (*domain.Section, error) {
	const q = `
INSERT INTO sections (board_id, name, position) VALUES (?, ?, ?)
RETURNING id, board_id, name, position`
	var s domain.Section
	if err := t.q.QueryRowContext(ctx, q, boardID, name, position).Scan(&s.ID, &s.BoardID, &s.Name, &s.Position); err != nil {
		return nil, err
	}
	return &s, nil
}

func (t *sqliteTx) SectionByID(ctx context.Context, id int64) (*domain.Section, error) {
	const q = `SELECT id, board_id, name, position FROM sections WHERE id = ?`
	var s domain.Section
	if err := t.q.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.BoardID, &s.Name, &s.Position); err != nil {
		return nil, notFound(err, "section %d", id)
	}
	return &s, nil
}

func (t *sqliteTx) Sections(ctx context.Context, boardID int64) ([]domain.Section, error) {
	const q = `
SELECT id, board_id, name, position FROM sections
WHERE board_id = ?
ORDER BY position, id`
	rows, err := t.q.QueryContext(ctx, q, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Section, 0, len(domain.DefaultSectionNames))
	for rows.Next() {
		var s domain.Section
		if err := rows.Scan(&s.ID, &s.BoardID, &s.Name, &s.Position); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (t *sqliteTx) Tasks(ctx context.Context, boardID int64) ([]domain.Task, error) {
	const q = `
SELECT t.id, t.section_id, t.text FROM tasks t
JOIN sections s ON s.id = t.section_id
WHERE s.board_id = ?
ORDER BY t.id`
	rows, err := t.q.QueryContext(ctx, q, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Task, 0, 16)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.SectionID, &task.Text); err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (t *sqliteTx) TaskByID(ctx context.Context, id int64) (*domain.Task, error) {
	const q = `SELECT id, section_id, text FROM tasks WHERE id = ?`
	var task domain.Task
	if err := t.q.QueryRowContext(ctx, q, id).Scan(&task.ID, &task.SectionID, &task.Text); err != nil {
		return nil, notFound(err, "task %d", id)
	}
	return &task, nil
}

// LockTask takes the database write lock by touching the row, since SQLite
// has no row-level locks.
func (t *sqliteTx) LockTask(ctx context.Context, id int64) (*domain.Task, error) {
	const q = `
UPDATE tasks SET updated_at = updated_at WHERE id = ?
RETURNING id, section_id, text`
	var task domain.Task
	if err := t.q.QueryRowContext(ctx, q, id).Scan(&task.ID, &task.SectionID, &task.Text); err != nil {
		return nil, notFound(err, "task %d", id)
	}
	return &task, nil
}

func (t *sqliteTx) InsertTask(ctx context.Context, sectionID int64, text string) (*domain.Task, error) {
	const q = `
INSERT INTO tasks (section_id, text) VALUES (?, ?)
RETURNING id, section_id, text`
	var task domain.Task
	if err := t.q.QueryRowContext(ctx, q, sectionID, text).Scan(&task.ID, &task.SectionID, &task.Text); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *sqliteTx) UpdateTaskText(ctx context.Context, id int64, text string) (*domain.Task, error) {
	const q = `
UPDATE tasks SET text = ?, updated_at = datetime('now') WHERE id = ?
RETURNING id, section_id, text`
	var task domain.Task
	if err := t.q.QueryRowContext(ctx, q, text, id).Scan(&task.ID, &task.SectionID, &task.Text); err != nil {
		return nil, notFound(err, "task %d", id)
	}
	return &task, nil
}

func (t *sqliteTx) MoveTask(ctx context.Context, id, sectionID int64) error {
	const q = `UPDATE tasks SET section_id = ?, updated_at = datetime('now') WHERE id = ?`
	res, err := t.q.ExecContext(ctx, q, sectionID, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, id)
}

func (t *sqliteTx) DeleteTask(ctx context.Context, id int64) error {
	res, err := t.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, id)
}

func expectOneRow(res sql.Result, taskID int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: task %d", domain.ErrNotFound, taskID)
	}
	return nil
}
