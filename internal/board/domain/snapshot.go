package domain

import "fmt"

// BoardSnapshot is the read-only nested view of a board returned to clients.
type BoardSnapshot struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Sections []SectionSnapshot `json:"sections"`
}

type SectionSnapshot struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Tasks []TaskSnapshot `json:"tasks"`
}

type TaskSnapshot struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// NewTaskSnapshot flattens a task for API responses.
func NewTaskSnapshot(t Task) TaskSnapshot {
	return TaskSnapshot{ID: t.ID, Text: t.Text}
}

// Aggregate builds the snapshot of board from its full section and task sets.
// Sections come out in board order and tasks in ascending ID order. A task
// pointing at a section outside the board is an ErrInvariantViolation.
func Aggregate(board Board, sections []Section, tasks []Task) (BoardSnapshot, error) {
	ordered := OrderedSections(sections)

	index := make(map[int64]int, len(ordered))
	snap := BoardSnapshot{
		ID:       board.ID,
		Name:     board.Name,
		Sections: make([]SectionSnapshot, 0, len(ordered)),
	}
	for i, s := range ordered {
		if s.BoardID != board.ID {
			return BoardSnapshot{}, fmt.Errorf("%w: section %d belongs to board %d, not %d", ErrInvariantViolation, s.ID, s.BoardID, board.ID)
		}
		index[s.ID] = i
		snap.Sections = append(snap.Sections, SectionSnapshot{
			ID:    s.ID,
			Name:  s.Name,
			Tasks: []TaskSnapshot{},
		})
	}

	for _, t := range OrderedTasks(tasks) {
		i, ok := index[t.SectionID]
		if !ok {
			return BoardSnapshot{}, fmt.Errorf("%w: task %d references section %d outside board %d", ErrInvariantViolation, t.ID, t.SectionID, board.ID)
		}
		snap.Sections[i].Tasks = append(snap.Sections[i].Tasks, NewTaskSnapshot(t))
	}

	return snap, nil
}
