package users

import (
	"context"
	"testing"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRepo_EnsureUser(t *testing.T) {
	db, err := sqlite.OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLiteRepo(db)
	ctx := context.Background()

	t.Run("creates then reuses the same id", func(t *testing.T) {
		first, err := repo.EnsureUser(ctx, UpsertUser{ExternalID: "firebase-uid-1", Email: "ada@example.com"})
		require.NoError(t, err)
		assert.Positive(t, first)

		again, err := repo.EnsureUser(ctx, UpsertUser{ExternalID: "firebase-uid-1"})
		require.NoError(t, err)
		assert.Equal(t, first, again)

		var email string
		require.NoError(t, db.QueryRow(`SELECT email FROM users WHERE id = ?`, first).Scan(&email))
		assert.Equal(t, "ada@example.com", email, "blank email must not overwrite the stored one")
	})

	t.Run("distinct subjects get distinct ids", func(t *testing.T) {
		a, err := repo.EnsureUser(ctx, UpsertUser{ExternalID: "a"})
		require.NoError(t, err)
		b, err := repo.EnsureUser(ctx, UpsertUser{ExternalID: "b"})
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("rejects empty subject", func(t *testing.T) {
		_, err := repo.EnsureUser(ctx, UpsertUser{ExternalID: "  "})
		assert.Error(t, err)
	})
}
