package whalealert

import "context"

// Blockchain provides read access to chain data needed for scanning.
type Blockchain interface {
	// BlockByHeight fetches the block at the given height with all its
	// transactions. It returns (nil, nil) when no block exists at that
	// height yet.
	BlockByHeight(ctx context.Context, height uint64) (*Block, error)

	// TransactionByHash fetches a transaction by its id, used to resolve
	// the ownership of consumed outputs. It returns (nil, nil) when the
	// transaction is unknown to the node.
	TransactionByHash(ctx context.Context, hash string) (*Transaction, error)
}
