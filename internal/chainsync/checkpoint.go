package chainsync

import (
	"context"
	"errors"
)

// ErrNoCheckpointFound is returned by LoadLatestCheckpoint when no checkpoint
// has ever been saved.
var ErrNoCheckpointFound = errors.New("no checkpoint found")

// ErrCheckpointSave marks a failed checkpoint write. Proceeding without
// durable progress risks duplicated or skipped blocks after a restart, so
// this error is fatal to the run.
var ErrCheckpointSave = errors.New("failed to save checkpoint")

// CheckpointStorage persists the highest fully processed block height. The
// poll driver is the only writer.
type CheckpointStorage interface {
	// SaveCheckpoint records height as the latest fully processed block,
	// overwriting any previous value.
	SaveCheckpoint(ctx context.Context, height uint64) error

	// LoadLatestCheckpoint returns the most recently saved height, or
	// ErrNoCheckpointFound when nothing has been saved yet.
	LoadLatestCheckpoint(ctx context.Context) (uint64, error)
}
