package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/repository"
)

// AddTask appends a task to one of the user's sections.
func (s *BoardService) AddTask(ctx context.Context, userID, sectionID int64, text string) (task *domain.Task, err error) {
	ctx, span := s.startSpan(ctx, "add_task",
		attribute.Int64("user_id", userID),
		attribute.Int64("section_id", sectionID),
	)
	defer func() { s.finish(ctx, span, "add_task", err) }()

	text, err = domain.NormalizeTaskText(text)
	if err != nil {
		return nil, err
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		if _, _, err := ownedSection(ctx, tx, userID, sectionID); err != nil {
			return err
		}
		task, err = tx.InsertTask(ctx, sectionID, text)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.evict(ctx, userID)
	return task, nil
}

// UpdateTask replaces a task's text.
func (s *BoardService) UpdateTask(ctx context.Context, userID, sectionID, taskID int64, text string) (task *domain.Task, err error) {
	ctx, span := s.startSpan(ctx, "update_task",
		attribute.Int64("user_id", userID),
		attribute.Int64("task_id", taskID),
	)
	defer func() { s.finish(ctx, span, "update_task", err) }()

	text, err = domain.NormalizeTaskText(text)
	if err != nil {
		return nil, err
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		if _, _, _, err := ownedTask(ctx, tx, userID, sectionID, taskID, true); err != nil {
			return err
		}
		task, err = tx.UpdateTaskText(ctx, taskID, text)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.evict(ctx, userID)
	return task, nil
}

// DeleteTask removes a task.
func (s *BoardService) DeleteTask(ctx context.Context, userID, sectionID, taskID int64) (err error) {
	ctx, span := s.startSpan(ctx, "delete_task",
		attribute.Int64("user_id", userID),
		attribute.Int64("task_id", taskID),
	)
	defer func() { s.finish(ctx, span, "delete_task", err) }()

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		if _, _, _, err := ownedTask(ctx, tx, userID, sectionID, taskID, true); err != nil {
			return err
		}
		return tx.DeleteTask(ctx, taskID)
	})
	if err != nil {
		return err
	}

	s.evict(ctx, userID)
	return nil
}
