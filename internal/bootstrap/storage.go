package bootstrap

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/GoSim-25-26J-441/kanban-backend/config"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/repository"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/storage/sqlite"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/users"
)

// Storage bundles the stores for the configured DB_DRIVER.
type Storage struct {
	Boards repository.Store
	Users  users.Store
	close  func()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.Boards.Ping(ctx)
}

func (s *Storage) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// Migrate brings the schema up to date without opening the request pool.
func Migrate(ctx context.Context, cfg *config.DatabaseConfig, logger *log.Logger) error {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewConnection(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := postgres.Migrate(ctx, db)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.WithField("applied", n).Info("postgres schema up to date")
		return nil
	case config.DriverSQLite:
		// OpenDB applies the schema
		db, err := sqlite.OpenDB(cfg.SQLitePath)
		if err != nil {
			return err
		}
		logger.WithField("path", cfg.SQLitePath).Info("sqlite schema up to date")
		return db.Close()
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// OpenStorage migrates the schema and opens the stores.
func OpenStorage(ctx context.Context, cfg *config.DatabaseConfig, logger *log.Logger) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if err := Migrate(ctx, cfg, logger); err != nil {
			return nil, err
		}
		pool, err := OpenDB(ctx, cfg, DBOptions{})
		if err != nil {
			return nil, err
		}
		return &Storage{
			Boards: repository.NewPostgresStore(pool),
			Users:  users.NewRepo(pool),
			close:  pool.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.OpenDB(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Boards: repository.NewSQLiteStore(db),
			Users:  users.NewSQLiteRepo(db),
			close:  func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}
