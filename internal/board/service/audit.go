package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/repository"
)

// Violation describes one board that fails a structural check.
type Violation struct {
	BoardID int64  `json:"board_id"`
	OwnerID int64  `json:"owner_id"`
	Reason  string `json:"reason"`
}

// AuditReport summarizes an Audit run.
type AuditReport struct {
	BoardsChecked int         `json:"boards_checked"`
	Violations    []Violation `json:"violations"`
}

// OK reports whether the audit found nothing.
func (r AuditReport) OK() bool { return len(r.Violations) == 0 }

// Audit walks every board and checks the structural invariants the mover and
// aggregator rely on. It never modifies data.
func (s *BoardService) Audit(ctx context.Context) (report AuditReport, err error) {
	ctx, span := s.startSpan(ctx, "audit")
	defer func() { s.finish(ctx, span, "audit", err) }()

	report.Violations = []Violation{}
	err = s.store.ReadTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		boards, err := tx.Boards(ctx)
		if err != nil {
			return err
		}
		for _, b := range boards {
			reasons, err := auditBoard(ctx, tx, b)
			if err != nil {
				return fmt.Errorf("audit board %d: %w", b.ID, err)
			}
			for _, r := range reasons {
				report.Violations = append(report.Violations, Violation{BoardID: b.ID, OwnerID: b.OwnerID, Reason: r})
			}
			report.BoardsChecked++
		}
		return nil
	})
	if err != nil {
		return AuditReport{}, err
	}

	span.SetAttributes(
		attribute.Int("boards_checked", report.BoardsChecked),
		attribute.Int("violations", len(report.Violations)),
	)
	for _, v := range report.Violations {
		s.logger.WithFields(log.Fields{
			"board_id": v.BoardID,
			"owner_id": v.OwnerID,
		}).Error("board audit: " + v.Reason)
	}
	return report, nil
}

func auditBoard(ctx context.Context, tx repository.Tx, b domain.Board) ([]string, error) {
	sections, err := tx.Sections(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return []string{"board has no sections"}, nil
	}

	var reasons []string
	seen := make(map[int]int64, len(sections))
	for _, sec := range sections {
		if prev, dup := seen[sec.Position]; dup {
			reasons = append(reasons, fmt.Sprintf("sections %d and %d share position %d", prev, sec.ID, sec.Position))
			continue
		}
		seen[sec.Position] = sec.ID
	}

	tasks, err := tx.Tasks(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if _, err := domain.Aggregate(b, sections, tasks); err != nil {
		reasons = append(reasons, err.Error())
	}
	return reasons, nil
}
