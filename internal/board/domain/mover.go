package domain

import "fmt"

// Direction of a task move between adjacent sections.
type Direction int

const (
	Promote Direction = iota + 1
	Demote
)

func (d Direction) String() string {
	switch d {
	case Promote:
		return "promote"
	case Demote:
		return "demote"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Destination returns the section a task in source moves to when moved in dir.
// A promote from the last section or a demote from the first one fails with
// ErrIllegalMove. A source that is not among siblings fails with
// ErrInvariantViolation.
func Destination(siblings []Section, source Section, dir Direction) (Section, error) {
	if len(siblings) == 0 {
		return Section{}, fmt.Errorf("%w: board %d has no sections", ErrInvariantViolation, source.BoardID)
	}

	switch dir {
	case Promote:
		if IsLastSection(source, siblings) {
			return Section{}, fmt.Errorf("%w: task could not be promoted: task is in last section", ErrIllegalMove)
		}
		return nextSection(siblings, source)
	case Demote:
		if IsFirstSection(source, siblings) {
			return Section{}, fmt.Errorf("%w: task could not be demoted: task is in first section", ErrIllegalMove)
		}
		return previousSection(siblings, source)
	default:
		return Section{}, fmt.Errorf("%w: unknown direction %s", ErrInvalidInput, dir)
	}
}

func nextSection(siblings []Section, source Section) (Section, error) {
	seen := false
	for _, s := range OrderedSections(siblings) {
		if seen {
			return s, nil
		}
		if s.ID == source.ID {
			seen = true
		}
	}
	return Section{}, sourceMissing(source)
}

func previousSection(siblings []Section, source Section) (Section, error) {
	var last *Section
	for _, s := range OrderedSections(siblings) {
		if s.ID == source.ID {
			if last == nil {
				break
			}
			return *last, nil
		}
		last = &s
	}
	return Section{}, sourceMissing(source)
}

func sourceMissing(source Section) error {
	return fmt.Errorf("%w: section %d not found among sections of board %d", ErrInvariantViolation, source.ID, source.BoardID)
}
