package service

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/repository"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/logging"
)

const tracerName = "github.com/GoSim-25-26J-441/kanban-backend/internal/board/service"

// SnapshotCache is an optional read-through cache of per-user snapshots.
type SnapshotCache interface {
	Get(ctx context.Context, userID int64) (snap *domain.BoardSnapshot, version int64, ok bool)
	Set(ctx context.Context, userID, version int64, snap *domain.BoardSnapshot)
	Evict(ctx context.Context, userID int64)
}

// BoardService handles board, section and task business logic
type BoardService struct {
	store    repository.Store
	cache    SnapshotCache
	logger   *log.Logger
	template domain.Template
}

type Option func(*BoardService)

// WithTemplate sets the board and sections provisioned for new users.
// The template is expected to be normalized already.
func WithTemplate(t domain.Template) Option {
	return func(s *BoardService) {
		if len(t.Sections) > 0 {
			s.template = t
		}
	}
}

// NewBoardService creates a new BoardService. cache may be nil.
func NewBoardService(store repository.Store, cache SnapshotCache, logger *log.Logger, opts ...Option) *BoardService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	s := &BoardService{
		store:    store,
		cache:    cache,
		logger:   logger,
		template: domain.DefaultTemplate(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BoardService) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "board."+op, trace.WithAttributes(attrs...))
}

// finish records err on the span. Invariant violations are also logged.
func (s *BoardService) finish(ctx context.Context, span trace.Span, op string, err error) {
	defer span.End()
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if errors.Is(err, domain.ErrInvariantViolation) {
		logging.FromContext(ctx, s.logger).
			WithField("operation", op).
			WithError(err).
			Error("board invariant violated")
	}
}

func (s *BoardService) evict(ctx context.Context, userID int64) {
	if s.cache != nil {
		s.cache.Evict(ctx, userID)
	}
}

// ownedSection loads a section and verifies that its board belongs to userID.
func ownedSection(ctx context.Context, tx repository.Tx, userID, sectionID int64) (*domain.Section, *domain.Board, error) {
	section, err := tx.SectionByID(ctx, sectionID)
	if err != nil {
		return nil, nil, err
	}
	board, err := tx.BoardByID(ctx, section.BoardID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: section %d references missing board %d", domain.ErrInvariantViolation, section.ID, section.BoardID)
		}
		return nil, nil, err
	}
	if board.OwnerID != userID {
		return nil, nil, fmt.Errorf("%w: section %d belongs to another user", domain.ErrUnauthorized, sectionID)
	}
	return section, board, nil
}

// ownedTask loads a task addressed as /section/{sectionID}/task/{taskID} and
// verifies ownership. lock takes a row lock for the rest of the transaction.
func ownedTask(ctx context.Context, tx repository.Tx, userID, sectionID, taskID int64, lock bool) (*domain.Task, *domain.Section, *domain.Board, error) {
	var (
		task *domain.Task
		err  error
	)
	if lock {
		task, err = tx.LockTask(ctx, taskID)
	} else {
		task, err = tx.TaskByID(ctx, taskID)
	}
	if err != nil {
		return nil, nil, nil, err
	}
	if task.SectionID != sectionID {
		return nil, nil, nil, fmt.Errorf("%w: task %d in section %d", domain.ErrNotFound, taskID, sectionID)
	}
	section, board, err := ownedSection(ctx, tx, userID, sectionID)
	if err != nil {
		return nil, nil, nil, err
	}
	return task, section, board, nil
}
