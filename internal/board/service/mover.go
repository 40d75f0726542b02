package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/repository"
)

// Promote moves a task to the section after its current one.
func (s *BoardService) Promote(ctx context.Context, userID, sectionID, taskID int64) error {
	return s.move(ctx, userID, sectionID, taskID, domain.Promote)
}

// Demote moves a task to the section before its current one.
func (s *BoardService) Demote(ctx context.Context, userID, sectionID, taskID int64) error {
	return s.move(ctx, userID, sectionID, taskID, domain.Demote)
}

// move reads the source section, computes the destination and writes the new
// section reference in a single transaction, with the task row locked.
func (s *BoardService) move(ctx context.Context, userID, sectionID, taskID int64, dir domain.Direction) (err error) {
	op := dir.String()
	ctx, span := s.startSpan(ctx, op,
		attribute.Int64("user_id", userID),
		attribute.Int64("section_id", sectionID),
		attribute.Int64("task_id", taskID),
	)
	defer func() { s.finish(ctx, span, op, err) }()

	var dest domain.Section
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		task, source, board, err := ownedTask(ctx, tx, userID, sectionID, taskID, true)
		if err != nil {
			return err
		}
		siblings, err := tx.Sections(ctx, board.ID)
		if err != nil {
			return err
		}
		dest, err = domain.Destination(siblings, *source, dir)
		if err != nil {
			return err
		}
		return tx.MoveTask(ctx, task.ID, dest.ID)
	})
	if err != nil {
		return err
	}

	span.SetAttributes(attribute.Int64("destination_section_id", dest.ID))
	s.evict(ctx, userID)
	return nil
}
