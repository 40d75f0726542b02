package template

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
)

// YTemplate is the on-disk shape of a board template:
//
//	board: Default Board
//	sections: [TODO, DOING, DONE]
type YTemplate struct {
	Board    string   `yaml:"board"`
	Sections []string `yaml:"sections"`
}

// Load reads a template from path. An empty path yields the default template.
func Load(path string) (domain.Template, error) {
	if path == "" {
		return domain.DefaultTemplate(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Template{}, fmt.Errorf("read board template: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML template. A missing board name falls back to the
// default; unknown keys are rejected.
func Parse(b []byte) (domain.Template, error) {
	var y YTemplate
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&y); err != nil {
		return domain.Template{}, fmt.Errorf("parse board template: %w", err)
	}
	if y.Board == "" {
		y.Board = domain.DefaultBoardName
	}

	tpl, err := domain.Template{BoardName: y.Board, Sections: y.Sections}.Normalize()
	if err != nil {
		return domain.Template{}, fmt.Errorf("board template: %w", err)
	}
	return tpl, nil
}
