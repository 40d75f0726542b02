package repository

import (
	"context"
	"os"
	"testing"

	"github.com/GoSim-25-26J-441/kanban-backend/config"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/users"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real database only when KANBAN_TEST_DSN is set.
func setupPostgresStore(t *testing.T) (*PostgresStore, int64) {
	t.Helper()
	dsn := os.Getenv("KANBAN_TEST_DSN")
	if dsn == "" {
		t.Skip("KANBAN_TEST_DSN not set")
	}
	ctx := context.Background()

	sqlDB, err := postgres.NewConnection(&config.DatabaseConfig{DSN: dsn})
	require.NoError(t, err)
	_, err = postgres.Migrate(ctx, sqlDB)
	require.NoError(t, err)
	sqlDB.Close()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	uid, err := users.NewRepo(pool).EnsureUser(ctx, users.UpsertUser{ExternalID: "it-" + uuid.NewString()})
	require.NoError(t, err)
	return NewPostgresStore(pool), uid
}

func TestPostgresStore_BoardAndTasks(t *testing.T) {
	store, owner := setupPostgresStore(t)
	board, sections := seedBoard(t, store, owner)
	ctx := context.Background()

	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		_, created, err := tx.InsertBoardIfAbsent(ctx, owner, "dup")
		require.NoError(t, err)
		assert.False(t, created)

		task, err := tx.InsertTask(ctx, sections[0].ID, "write docs")
		require.NoError(t, err)
		locked, err := tx.LockTask(ctx, task.ID)
		require.NoError(t, err)
		return tx.MoveTask(ctx, locked.ID, sections[1].ID)
	}))

	require.NoError(t, store.ReadTx(ctx, func(ctx context.Context, tx Tx) error {
		listed, err := tx.Sections(ctx, board.ID)
		require.NoError(t, err)
		assert.Equal(t, sections, listed)

		tasks, err := tx.Tasks(ctx, board.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, sections[1].ID, tasks[0].SectionID)

		_, err = tx.TaskByID(ctx, -1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		return nil
	}))
}
