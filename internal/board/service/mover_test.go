package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
)

func TestPromoteDemote_WalksTheBoard(t *testing.T) {
	f := newFixture(t)
	uid := f.user(t, "alice")
	ctx := context.Background()
	snap := f.snapshot(t, uid)
	todo, doing, done := snap.Sections[0].ID, snap.Sections[1].ID, snap.Sections[2].ID

	task, err := f.svc.AddTask(ctx, uid, todo, "ship it")
	require.NoError(t, err)

	require.NoError(t, f.svc.Promote(ctx, uid, todo, task.ID))
	assert.Len(t, f.snapshot(t, uid).Sections[1].Tasks, 1)

	require.NoError(t, f.svc.Promote(ctx, uid, doing, task.ID))
	got := f.snapshot(t, uid)
	assert.Empty(t, got.Sections[0].Tasks)
	assert.Empty(t, got.Sections[1].Tasks)
	require.Len(t, got.Sections[2].Tasks, 1)
	assert.Equal(t, "ship it", got.Sections[2].Tasks[0].Text)

	err = f.svc.Promote(ctx, uid, done, task.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalMove)
	assert.Len(t, f.snapshot(t, uid).Sections[2].Tasks, 1)

	require.NoError(t, f.svc.Demote(ctx, uid, done, task.ID))
	require.NoError(t, f.svc.Demote(ctx, uid, doing, task.ID))
	assert.Len(t, f.snapshot(t, uid).Sections[0].Tasks, 1)

	err = f.svc.Demote(ctx, uid, todo, task.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalMove)
	assert.Len(t, f.snapshot(t, uid).Sections[0].Tasks, 1)
}

func TestPromoteDemote_PreservesTaskCount(t *testing.T) {
	f := newFixture(t)
	uid := f.user(t, "alice")
	ctx := context.Background()
	snap := f.snapshot(t, uid)
	todo := snap.Sections[0].ID

	var ids []int64
	for _, text := range []string{"a", "b", "c"} {
		task, err := f.svc.AddTask(ctx, uid, todo, text)
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}
	require.NoError(t, f.svc.Promote(ctx, uid, todo, ids[1]))

	count := func() int {
		n := 0
		for _, s := range f.snapshot(t, uid).Sections {
			n += len(s.Tasks)
		}
		return n
	}
	assert.Equal(t, 3, count())

	got := f.snapshot(t, uid)
	assert.Equal(t, []domain.TaskSnapshot{{ID: ids[0], Text: "a"}, {ID: ids[2], Text: "c"}}, got.Sections[0].Tasks)
	assert.Equal(t, []domain.TaskSnapshot{{ID: ids[1], Text: "b"}}, got.Sections[1].Tasks)
}

func TestMove_Errors(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	ctx := context.Background()
	snap := f.snapshot(t, alice)
	todo, doing := snap.Sections[0].ID, snap.Sections[1].ID
	bobTodo := f.snapshot(t, bob).Sections[0].ID

	task, err := f.svc.AddTask(ctx, alice, todo, "mine")
	require.NoError(t, err)

	tests := []struct {
		name      string
		userID    int64
		sectionID int64
		taskID    int64
		want      error
	}{
		{"missing task", alice, todo, 9999, domain.ErrNotFound},
		{"task not in section", alice, doing, task.ID, domain.ErrNotFound},
		{"section of another board", alice, bobTodo, task.ID, domain.ErrNotFound},
		{"not the owner", bob, todo, task.ID, domain.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, f.svc.Promote(ctx, tt.userID, tt.sectionID, tt.taskID), tt.want)
			assert.ErrorIs(t, f.svc.Demote(ctx, tt.userID, tt.sectionID, tt.taskID), tt.want)
		})
	}

	assert.Len(t, f.snapshot(t, alice).Sections[0].Tasks, 1)
}
