package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSections() []Section {
	return []Section{
		{ID: 1, BoardID: 7, Name: "TODO", Position: 0},
		{ID: 2, BoardID: 7, Name: "DOING", Position: 1},
		{ID: 3, BoardID: 7, Name: "DONE", Position: 2},
	}
}

func TestIsFirstAndLastSection(t *testing.T) {
	t.Run("exactly one first and one last section", func(t *testing.T) {
		sections := defaultSections()

		var firsts, lasts []int64
		for _, s := range sections {
			if IsFirstSection(s, sections) {
				firsts = append(firsts, s.ID)
			}
			if IsLastSection(s, sections) {
				lasts = append(lasts, s.ID)
			}
		}
		assert.Equal(t, []int64{1}, firsts)
		assert.Equal(t, []int64{3}, lasts)
	})

	t.Run("single section is both first and last", func(t *testing.T) {
		only := Section{ID: 42, BoardID: 1, Name: "ONLY"}
		siblings := []Section{only}
		assert.True(t, IsFirstSection(only, siblings))
		assert.True(t, IsLastSection(only, siblings))
	})

	t.Run("order does not depend on input order", func(t *testing.T) {
		sections := defaultSections()
		shuffled := []Section{sections[2], sections[0], sections[1]}
		assert.True(t, IsFirstSection(sections[0], shuffled))
		assert.True(t, IsLastSection(sections[2], shuffled))
		assert.False(t, IsFirstSection(sections[1], shuffled))
		assert.False(t, IsLastSection(sections[1], shuffled))
	})

	t.Run("empty sibling set", func(t *testing.T) {
		s := Section{ID: 1}
		assert.False(t, IsFirstSection(s, nil))
		assert.False(t, IsLastSection(s, nil))
	})

	t.Run("equal positions fall back to id order", func(t *testing.T) {
		legacy := []Section{
			{ID: 9, BoardID: 1},
			{ID: 4, BoardID: 1},
			{ID: 6, BoardID: 1},
		}
		assert.True(t, IsFirstSection(legacy[1], legacy))
		assert.True(t, IsLastSection(legacy[0], legacy))
	})
}

func TestOrderedSections_DoesNotMutateInput(t *testing.T) {
	in := []Section{{ID: 3, Position: 2}, {ID: 1, Position: 0}}
	out := OrderedSections(in)

	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(3), in[0].ID)
}

func TestOrderedTasks(t *testing.T) {
	out := OrderedTasks([]Task{{ID: 12}, {ID: 3}, {ID: 7}})
	assert.Equal(t, []Task{{ID: 3}, {ID: 7}, {ID: 12}}, out)
}
