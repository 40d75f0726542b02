package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/repository"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/logging"
)

// EnsureBoard returns the user's board, provisioning the default board and
// its sections in one transaction when the user has none.
func (s *BoardService) EnsureBoard(ctx context.Context, userID int64) (board *domain.Board, err error) {
	ctx, span := s.startSpan(ctx, "ensure_board", attribute.Int64("user_id", userID))
	defer func() { s.finish(ctx, span, "ensure_board", err) }()

	created := false
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		existing, err := tx.BoardByOwner(ctx, userID)
		if err == nil {
			board = existing
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		fresh, ok, err := tx.InsertBoardIfAbsent(ctx, userID, s.template.BoardName)
		if err != nil {
			return fmt.Errorf("create board: %w", err)
		}
		if !ok {
			// another request provisioned it first
			board, err = tx.BoardByOwner(ctx, userID)
			return err
		}

		for i, name := range s.template.Sections {
			if _, err := tx.InsertSection(ctx, fresh.ID, name, i); err != nil {
				return fmt.Errorf("create section %q: %w", name, err)
			}
		}
		board = fresh
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		logging.FromContext(ctx, s.logger).
			WithFields(map[string]any{"user_id": userID, "board_id": board.ID}).
			Info("provisioned default board")
	}
	return board, nil
}

// Snapshot returns the aggregate view of the user's board, provisioning it
// first if needed.
func (s *BoardService) Snapshot(ctx context.Context, userID int64) (*domain.BoardSnapshot, error) {
	version := int64(-1)
	if s.cache != nil {
		snap, v, ok := s.cache.Get(ctx, userID)
		if ok {
			return snap, nil
		}
		version = v
	}

	board, err := s.EnsureBoard(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap, err := s.Aggregate(ctx, board.ID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, version, snap)
	}
	return snap, nil
}

// Aggregate reads a board's sections and tasks in one read transaction and
// flattens them into a snapshot.
func (s *BoardService) Aggregate(ctx context.Context, boardID int64) (snap *domain.BoardSnapshot, err error) {
	ctx, span := s.startSpan(ctx, "aggregate", attribute.Int64("board_id", boardID))
	defer func() { s.finish(ctx, span, "aggregate", err) }()

	err = s.store.ReadTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		board, err := tx.BoardByID(ctx, boardID)
		if err != nil {
			return err
		}
		sections, err := tx.Sections(ctx, board.ID)
		if err != nil {
			return err
		}
		tasks, err := tx.Tasks(ctx, board.ID)
		if err != nil {
			return err
		}
		out, err := domain.Aggregate(*board, sections, tasks)
		if err != nil {
			return err
		}
		snap = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
