package domain

import (
	"cmp"
	"slices"
)

// OrderedSections returns a copy of sections in board order: ascending
// Position, then ascending ID.
func OrderedSections(sections []Section) []Section {
	out := slices.Clone(sections)
	slices.SortStableFunc(out, func(a, b Section) int {
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// OrderedTasks returns a copy of tasks in ascending ID order.
func OrderedTasks(tasks []Task) []Task {
	out := slices.Clone(tasks)
	slices.SortFunc(out, func(a, b Task) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// IsFirstSection reports whether section is the first of its board.
// siblings must be the full section set of the board.
func IsFirstSection(section Section, siblings []Section) bool {
	if len(siblings) == 0 {
		return false
	}
	return OrderedSections(siblings)[0].ID == section.ID
}

// IsLastSection reports whether section is the last of its board.
// siblings must be the full section set of the board.
func IsLastSection(section Section, siblings []Section) bool {
	if len(siblings) == 0 {
		return false
	}
	ordered := OrderedSections(siblings)
	return ordered[len(ordered)-1].ID == section.ID
}

// ContainsSection reports whether id is among sections.
func ContainsSection(sections []Section, id int64) bool {
	return slices.ContainsFunc(sections, func(s Section) bool { return s.ID == id })
}
