package postgres

import (
	"database/sql"
	"fmt"

	"github.com/GoSim-25-26J-441/kanban-backend/config"
	_ "github.com/lib/pq"
)

// NewConnection opens a database/sql handle on the lib/pq driver. It is used
// for schema migrations; request traffic goes through the pgx pool.
func NewConnection(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)

	return db, nil
}
