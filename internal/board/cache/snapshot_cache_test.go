package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func sampleSnapshot() *domain.BoardSnapshot {
	return &domain.BoardSnapshot{
		ID:   1,
		Name: domain.DefaultBoardName,
		Sections: []domain.SectionSnapshot{
			{ID: 1, Name: "TODO", Tasks: []domain.TaskSnapshot{{ID: 10, Text: "write docs"}}},
			{ID: 2, Name: "DOING", Tasks: []domain.TaskSnapshot{}},
		},
	}
}

func TestSnapshotCache_SetGetEvict(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewSnapshotCache(client, time.Minute, nil)
	ctx := context.Background()

	_, version, ok := c.Get(ctx, 5)
	assert.False(t, ok)
	assert.Equal(t, int64(0), version)

	c.Set(ctx, 5, version, sampleSnapshot())
	assert.True(t, mr.Exists("kanban:board:5"))
	assert.Equal(t, time.Minute, mr.TTL("kanban:board:5"))

	got, _, ok := c.Get(ctx, 5)
	require.True(t, ok)
	assert.Equal(t, sampleSnapshot(), got)

	c.Evict(ctx, 5)
	_, version, ok = c.Get(ctx, 5)
	assert.False(t, ok)
	assert.Equal(t, int64(1), version)
}

func TestSnapshotCache_SkipsWriteAfterEvict(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewSnapshotCache(client, time.Minute, nil)
	ctx := context.Background()

	// reader misses, a mutation commits and evicts, then the reader stores
	// the snapshot it built from the old data
	_, version, ok := c.Get(ctx, 7)
	require.False(t, ok)
	c.Evict(ctx, 7)
	c.Set(ctx, 7, version, sampleSnapshot())

	assert.False(t, mr.Exists("kanban:board:7"))

	_, version, ok = c.Get(ctx, 7)
	require.False(t, ok)
	c.Set(ctx, 7, version, sampleSnapshot())
	assert.True(t, mr.Exists("kanban:board:7"))
}

func TestSnapshotCache_SetIgnoresNoVersion(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewSnapshotCache(client, time.Minute, nil)

	c.Set(context.Background(), 2, NoVersion, sampleSnapshot())
	assert.False(t, mr.Exists("kanban:board:2"))
}

func TestSnapshotCache_Expires(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewSnapshotCache(client, time.Second, nil)
	ctx := context.Background()

	c.Set(ctx, 1, 0, sampleSnapshot())
	mr.FastForward(2 * time.Second)

	_, _, ok := c.Get(ctx, 1)
	assert.False(t, ok)
}

func TestSnapshotCache_DropsCorruptEntry(t *testing.T) {
	client, mr := setupTestRedis(t)
	logger, hook := test.NewNullLogger()
	c := NewSnapshotCache(client, time.Minute, logger)

	require.NoError(t, mr.Set("kanban:board:3", "{not json"))

	_, _, ok := c.Get(context.Background(), 3)
	assert.False(t, ok)
	assert.False(t, mr.Exists("kanban:board:3"))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestSnapshotCache_NilClientIsNoop(t *testing.T) {
	c := NewSnapshotCache(nil, time.Minute, nil)
	ctx := context.Background()

	c.Set(ctx, 1, 0, sampleSnapshot())
	_, version, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	assert.Equal(t, NoVersion, version)
	c.Evict(ctx, 1)
}

func TestSnapshotCache_RedisDownFallsBack(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	c := NewSnapshotCache(client, time.Minute, nil)

	_, version, ok := c.Get(context.Background(), 1)
	assert.False(t, ok)
	assert.Equal(t, NoVersion, version)
}
