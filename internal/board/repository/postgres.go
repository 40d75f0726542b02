package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
)

var (
	_ Store = (*PostgresStore)(nil)
	_ Tx    = (*pgTx)(nil)
)

// PostgresStore implements Store on a pgx pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// WithinTx runs fn in a read-committed transaction. Moves serialize on the
// task row lock taken by LockTask; concurrent provisioning serializes on the
// unique index over boards.owner_id.
func (s *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(ctx, &pgTx{q: tx})
	})
}

// ReadTx runs fn in a read-only repeatable-read transaction so every query
// sees the same snapshot.
func (s *PostgresStore) ReadTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	return pgx.BeginTxFunc(ctx, s.db, opts, func(tx pgx.Tx) error {
		return fn(ctx, &pgTx{q: tx})
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

type pgTx struct {
	q pgx.Tx
}

func pgNotFound(err error, format string, args ...any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}

func (t *pgTx) BoardByOwner(ctx context.Context, ownerID int64) (*domain.Board, error) {
	const q = `select id, owner_id, name from boards where owner_id = $1;`
	var b domain.Board
	if err := t.q.QueryRow(ctx, q, ownerID).Scan(&b.ID, &b.OwnerID, &b.Name); err != nil {
		return nil, pgNotFound(err, "board for user %d", ownerID)
	}
	return &b, nil
}

func (t *pgTx) BoardByID(ctx context.Context, id int64) (*domain.Board, error) {
	const q = `select id, owner_id, name from boards where id = $1;`
	var b domain.Board
	if err := t.q.QueryRow(ctx, q, id).Scan(&b.ID, &b.OwnerID, &b.Name); err != nil {
		return nil, pgNotFound(err, "board %d", id)
	}
	return &b, nil
}

func (t *pgTx) InsertBoardIfAbsent(ctx context.Context, ownerID int64, name string) (*domain.Board, bool, error) {
	const q = `
insert into boards (owner_id, name)
values ($1, $2)
on conflict (owner_id) do nothing
returning id, owner_id, name;
`
	var b domain.Board
	err := t.q.QueryRow(ctx, q, ownerID, name).Scan(&b.ID, &b.OwnerID, &b.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		// foreign key violation: the owner row does not exist
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, false, fmt.Errorf("%w: user %d", domain.ErrNotFound, ownerID)
		}
		return nil, false, err
	}
	return &b, true, nil
}

func (t *pgTx) Boards(ctx context.Context) ([]domain.Board, error) {
	rows, err := t.q.Query(ctx, `select id, owner_id, name from boards order by id;`)
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

func (t *pgTx) InsertSection(ctx context.Context, boardID int64, name string, position int) (*domain.Section, error) {
	const q = `
insert into sections (board_id, name, position)
values ($1, $2, $3)
returning id, board_id, name, position;
`
	var s domain.Section
	if err := t.q.QueryRow(ctx, q, boardID, name, position).Scan(&s.ID, &s.BoardID, &s.Name, &s.Position); err != nil {
		return nil, err
	}
	return &s, nil
}

func (t *pgTx) SectionByID(ctx context.Context, id int64) (*domain.Section, error) {
	const q = `select id, board_id, name, position from sections where id = $1;`
	var s domain.Section
	if err := t.q.QueryRow(ctx, q, id).Scan(&s.ID, &s.BoardID, &s.Name, &s.Position); err != nil {
		return nil, pgNotFound(err, "section %d", id)
	}
	return &s, nil
}

func (t *pgTx) Sections(ctx context.Context, boardID int64) ([]domain.Section, error) {
	const q = `
select id, board_id, name, position
from sections
where board_id = $1
order by position, id;
`
	rows, err := t.q.Query(ctx, q, boardID)
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

func (t *pgTx) Tasks(ctx context.Context, boardID int64) ([]domain.Task, error) {
	const q = `
select t.id, t.section_id, t.text
from tasks t
join sections s on s.id = t.section_id
where s.board_id = $1
order by t.id;
`
	rows, err := t.q.Query(ctx, q, boardID)
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

func (t *pgTx) TaskByID(ctx context.Context, id int64) (*domain.Task, error) {
	const q = `select id, section_id, text from tasks where id = $1;`
	var task domain.Task
	if err := t.q.QueryRow(ctx, q, id).Scan(&task.ID, &task.SectionID, &task.Text); err != nil {
		return nil, pgNotFound(err, "task %d", id)
	}
	return &task, nil
}

func (t *pgTx) LockTask(ctx context.Context, id int64) (*domain.Task, error) {
	const q = `select id, section_id, text from tasks where id = $1 for update;`
	var task domain.Task
	if err := t.q.QueryRow(ctx, q, id).Scan(&task.ID, &task.SectionID, &task.Text); err != nil {
		return nil, pgNotFound(err, "task %d", id)
	}
	return &task, nil
}

func (t *pgTx) InsertTask(ctx context.Context, sectionID int64, text string) (*domain.Task, error) {
	const q = `
insert into tasks (section_id, text)
values ($1, $2)
returning id, section_id, text;
`
	var task domain.Task
	if err := t.q.QueryRow(ctx, q, sectionID, text).Scan(&task.ID, &task.SectionID, &task.Text); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *pgTx) UpdateTaskText(ctx context.Context, id int64, text string) (*domain.Task, error) {
	const q = `
update tasks
set text = $2, updated_at = now()
where id = $1
returning id, section_id, text;
`
	var task domain.Task
	if err := t.q.QueryRow(ctx, q, id, text).Scan(&task.ID, &task.SectionID, &task.Text); err != nil {
		return nil, pgNotFound(err, "task %d", id)
	}
	return &task, nil
}

func (t *pgTx) MoveTask(ctx context.Context, id, sectionID int64) error {
	const q = `update tasks set section_id = $2, updated_at = now() where id = $1;`
	ct, err := t.q.Exec(ctx, q, id, sectionID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: task %d", domain.ErrNotFound, id)
	}
	return nil
}

func (t *pgTx) DeleteTask(ctx context.Context, id int64) error {
	ct, err := t.q.Exec(ctx, `delete from tasks where id = $1;`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: task %d", domain.ErrNotFound, id)
	}
	return nil
}
