package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
)

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	tpl, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTemplate(), tpl)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board: Sprint\nsections:\n  - Backlog\n  - \" Doing \"\n  - Done\n"), 0o600))

	tpl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sprint", tpl.BoardName)
	assert.Equal(t, []string{"Backlog", "Doing", "Done"}, tpl.Sections)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	tpl, err := Parse([]byte("sections: [A, B]"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBoardName, tpl.BoardName)

	tests := []struct {
		name string
		in   string
	}{
		{"empty document", ""},
		{"no sections", "board: X"},
		{"duplicate sections", "sections: [A, A]"},
		{"unknown key", "sections: [A]\ncolumns: [B]"},
		{"not yaml", "sections: [A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			assert.Error(t, err)
		})
	}
}
