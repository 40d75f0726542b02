package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/kanban-backend/config"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/repository"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/service"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/storage/sqlite"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/users"
)

func sqliteApp(path string) *App {
	return &App{LoadConfig: func() (*config.Config, error) {
		return &config.Config{
			Database: config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: path},
			Auth:     config.AuthConfig{Mode: config.AuthHeader},
			App:      config.AppConfig{Environment: "test", LogLevel: "error"},
		}, nil
	}}
}

func execute(app *App, args ...string) (string, error) {
	root := NewRootCmd(app)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanban.db")
	_, err := execute(sqliteApp(path), "migrate")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestAuditCmd_CleanDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanban.db")

	db, err := sqlite.OpenDB(path)
	require.NoError(t, err)
	uid, err := users.NewSQLiteRepo(db).EnsureUser(context.Background(), users.UpsertUser{ExternalID: "alice"})
	require.NoError(t, err)
	_, err = service.NewBoardService(repository.NewSQLiteStore(db), nil, nil).EnsureBoard(context.Background(), uid)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err := execute(sqliteApp(path), "audit")
	require.NoError(t, err)

	var report service.AuditReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.BoardsChecked)
	assert.Empty(t, report.Violations)
}

func TestAuditCmd_ReportsViolations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanban.db")

	db, err := sqlite.OpenDB(path)
	require.NoError(t, err)
	uid, err := users.NewSQLiteRepo(db).EnsureUser(context.Background(), users.UpsertUser{ExternalID: "alice"})
	require.NoError(t, err)
	store := repository.NewSQLiteStore(db)
	require.NoError(t, store.WithinTx(context.Background(), func(ctx context.Context, tx repository.Tx) error {
		_, _, err := tx.InsertBoardIfAbsent(ctx, uid, domain.DefaultBoardName)
		return err
	}))
	require.NoError(t, db.Close())

	out, err := execute(sqliteApp(path), "audit")
	require.Error(t, err)
	assert.Contains(t, out, "board has no sections")
}

func TestCommands_ConfigError(t *testing.T) {
	app := &App{LoadConfig: func() (*config.Config, error) { return nil, errors.New("PORT is required") }}
	for _, cmd := range []string{"serve", "migrate", "audit"} {
		_, err := execute(app, cmd)
		assert.EqualError(t, err, "PORT is required", cmd)
	}
}
