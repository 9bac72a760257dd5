package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/fmarchini/whalewatch/internal/chainsync"

	"github.com/redis/go-redis/v9"
)

// checkpointKey stores the highest fully processed block height. The daemon
// watches a single chain, so a single key suffices.
const checkpointKey = "whalewatch:checkpoint"

// SaveCheckpoint persists the height as a decimal string with no expiration.
func (c *client) SaveCheckpoint(ctx context.Context, height uint64) error {
	return c.conn.Set(ctx, checkpointKey, strconv.FormatUint(height, 10), 0).Err()
}

// LoadLatestCheckpoint retrieves the persisted height, mapping a missing key
// to chainsync.ErrNoCheckpointFound.
func (c *client) LoadLatestCheckpoint(ctx context.Context) (uint64, error) {
	val, err := c.conn.Get(ctx, checkpointKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = chainsync.ErrNoCheckpointFound
		}

		return 0, err
	}

	return strconv.ParseUint(val, 10, 64)
}

var _ chainsync.CheckpointStorage = (*client)(nil)
