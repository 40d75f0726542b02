package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Template describes the board and sections created for a new user.
type Template struct {
	BoardName string
	Sections  []string
}

// DefaultTemplate is the "Default Board" with TODO, DOING and DONE.
func DefaultTemplate() Template {
	return Template{
		BoardName: DefaultBoardName,
		Sections:  append([]string(nil), DefaultSectionNames...),
	}
}

// Normalize trims names and checks them against the name limits. Section
// names must be unique, and a template needs at least one section.
func (t Template) Normalize() (Template, error) {
	name, err := normalizeName("board name", t.BoardName)
	if err != nil {
		return Template{}, err
	}
	if len(t.Sections) == 0 {
		return Template{}, fmt.Errorf("%w: template needs at least one section", ErrInvalidInput)
	}

	out := Template{BoardName: name, Sections: make([]string, 0, len(t.Sections))}
	seen := make(map[string]bool, len(t.Sections))
	for _, raw := range t.Sections {
		section, err := normalizeName("section name", raw)
		if err != nil {
			return Template{}, err
		}
		if seen[section] {
			return Template{}, fmt.Errorf("%w: duplicate section %q", ErrInvalidInput, section)
		}
		seen[section] = true
		out.Sections = append(out.Sections, section)
	}
	return out, nil
}

func normalizeName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: %s must not be empty", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return "", fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidInput, field, NameMaxLength)
	}
	return name, nil
}
