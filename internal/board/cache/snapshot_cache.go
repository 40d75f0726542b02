package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/domain"
)

const snapshotKeyPrefix = "kanban:board:" // kanban:board:{user_id}

// NoVersion marks a generation that could not be read. Set ignores it.
const NoVersion int64 = -1

// SnapshotCache keeps each user's BoardSnapshot in Redis. A nil client turns
// every operation into a no-op; Redis failures never fail the caller.
//
// Each user also has a generation counter that Evict bumps. Get returns the
// generation it saw, and Set only writes if the counter has not moved since,
// so a snapshot built from data read before a mutation is never stored.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration, logger *log.Logger) *SnapshotCache {
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &SnapshotCache{client: client, ttl: ttl, logger: logger}
}

func snapshotKey(userID int64) string {
	return fmt.Sprintf("%s%d", snapshotKeyPrefix, userID)
}

func generationKey(userID int64) string {
	return snapshotKey(userID) + ":gen"
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd getter, userID int64) (int64, error) {
	gen, err := cmd.Get(ctx, generationKey(userID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

// Get returns the cached snapshot, or on a miss the generation to hand back
// to Set once a fresh snapshot has been built.
func (c *SnapshotCache) Get(ctx context.Context, userID int64) (*domain.BoardSnapshot, int64, bool) {
	if c == nil || c.client == nil {
		return nil, NoVersion, false
	}
	gen, err := readGeneration(ctx, c.client, userID)
	if err != nil {
		c.logger.WithError(err).WithField("user_id", userID).Warn("snapshot cache read failed")
		return nil, NoVersion, false
	}

	data, err := c.client.Get(ctx, snapshotKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).WithField("user_id", userID).Warn("snapshot cache read failed")
			_ = c.client.Del(ctx, snapshotKey(userID)).Err()
		}
		return nil, gen, false
	}
	var snap domain.BoardSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		c.logger.WithError(err).WithField("user_id", userID).Warn("dropping corrupt snapshot cache entry")
		_ = c.client.Del(ctx, snapshotKey(userID)).Err()
		return nil, gen, false
	}
	return &snap, gen, true
}

// Set stores snap if the user's generation still equals version.
func (c *SnapshotCache) Set(ctx context.Context, userID, version int64, snap *domain.BoardSnapshot) {
	if c == nil || c.client == nil || snap == nil || version < 0 {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}

	stale := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		gen, err := readGeneration(ctx, tx, userID)
		if err != nil {
			return err
		}
		if gen != version {
			stale = true
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, snapshotKey(userID), data, c.ttl)
			return nil
		})
		return err
	}, generationKey(userID))

	switch {
	case err == redis.TxFailedErr:
		stale = true
	case err != nil:
		c.logger.WithError(err).WithField("user_id", userID).Warn("snapshot cache write failed")
		return
	}
	if stale {
		c.logger.WithField("user_id", userID).Debug("skipping stale snapshot cache write")
	}
}

// Evict drops the cached snapshot and bumps the generation so in-flight
// readers cannot store what they built before the change.
func (c *SnapshotCache) Evict(ctx context.Context, userID int64) {
	if c == nil || c.client == nil {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(userID))
		pipe.Del(ctx, snapshotKey(userID))
		return nil
	})
	if err != nil {
		c.logger.WithError(err).WithField("user_id", userID).Warn("snapshot cache evict failed")
	}
}
