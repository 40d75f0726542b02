package repository

import (
	"context"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
)

// Store hands out transaction-scoped repositories. Every mutating operation
// runs inside WithinTx; every aggregate read runs inside ReadTx so it observes
// one consistent snapshot.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	ReadTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Ping(ctx context.Context) error
}

// Tx is the set of board/section/task operations available inside a
// transaction. Lookups of missing rows return domain.ErrNotFound.
type Tx interface {
	BoardByOwner(ctx context.Context, ownerID int64) (*domain.Board, error)
	BoardByID(ctx context.Context, id int64) (*domain.Board, error)
	// InsertBoardIfAbsent returns created=false when the owner already has a
	// board (possibly committed concurrently); the returned board is then nil.
	InsertBoardIfAbsent(ctx context.Context, ownerID int64, name string) (board *domain.Board, created bool, err error)
	Boards(ctx context.Context) ([]domain.Board, error)

	InsertSection(ctx context.Context, boardID int64, name string, position int) (*domain.Section, error)
	SectionByID(ctx context.Context, id int64) (*domain.Section, error)
	Sections(ctx context.Context, boardID int64) ([]domain.Section, error)

	Tasks(ctx context.Context, boardID int64) ([]domain.Task, error)
	TaskByID(ctx context.Context, id int64) (*domain.Task, error)
	// LockTask reads a task and holds a write lock on it until the transaction ends.
	LockTask(ctx context.Context, id int64) (*domain.Task, error)
	InsertTask(ctx context.Context, sectionID int64, text string) (*domain.Task, error)
	UpdateTaskText(ctx context.Context, id int64, text string) (*domain.Task, error)
	MoveTask(ctx context.Context, id, sectionID int64) error
	DeleteTask(ctx context.Context, id int64) error
}
