package http

import (
	"context"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
)

// BoardService is the core the handlers drive.
type BoardService interface {
	Snapshot(ctx context.Context, userID int64) (*domain.BoardSnapshot, error)
	AddTask(ctx context.Context, userID, sectionID int64, text string) (*domain.Task, error)
	UpdateTask(ctx context.Context, userID, sectionID, taskID int64, text string) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, sectionID, taskID int64) error
	Promote(ctx context.Context, userID, sectionID, taskID int64) error
	Demote(ctx context.Context, userID, sectionID, taskID int64) error
}

type taskBody struct {
	Text *string `json:"text"`
}

type okResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
