package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_CreatesSchema(t *testing.T) {
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "boards", "sections", "tasks"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenDB_MigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kanban.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	db.Close()

	db, err = OpenDB(path)
	require.NoError(t, err)
	defer db.Close()
}

func TestOpenDB_EnforcesForeignKeys(t *testing.T) {
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO tasks (section_id, text) VALUES (?, ?)`, 999, "orphan")
	assert.Error(t, err)
}
