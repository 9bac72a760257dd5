package chainsync

import "context"

// Chain exposes the chain tip used to drive the catch-up loop.
type Chain interface {
	// TipHeight returns the highest block height known to the node.
	TipHeight(ctx context.Context) (uint64, error)
}

// BlockProcessor handles a single block at a given height. The whalealert
// service implements it.
type BlockProcessor interface {
	// ProcessBlock fully processes the block at height, including the
	// dispatch of any resulting alerts. It must be idempotent: a crash
	// between processing and checkpointing causes the same height to be
	// replayed on restart.
	ProcessBlock(ctx context.Context, height uint64) error
}
