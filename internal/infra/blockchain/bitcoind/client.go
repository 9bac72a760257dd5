// Package bitcoind adapts a Bitcoin-family node's JSON-RPC interface to the
// chainsync and whalealert ports.
package bitcoind

import (
	"errors"

	"github.com/fmarchini/whalewatch/internal/chainsync"
	"github.com/fmarchini/whalewatch/internal/pkg/transport/jsonrpc"
	"github.com/fmarchini/whalewatch/internal/whalealert"
)

// ErrMalformedResponse indicates that the node returned a payload that could
// not be decoded into the expected shape.
var ErrMalformedResponse = errors.New("malformed node response")

// Bitcoin Core RPC error codes this adapter treats as "not found" rather
// than as failures.
const (
	rpcErrInvalidParameter = -8 // getblockhash: block height out of range
	rpcErrInvalidAddrOrKey = -5 // getrawtransaction: no such transaction
)

type client struct {
	conn jsonrpc.Client
}

var (
	_ chainsync.Chain       = (*client)(nil)
	_ whalealert.Blockchain = (*client)(nil)
)

// NewClient returns a node client speaking JSON-RPC through conn.
func NewClient(conn jsonrpc.Client) *client {
	return &client{
		conn: conn,
	}
}

// isNotFound reports whether err is a node-level "no such block/transaction"
// response.
func isNotFound(err error) bool {
	var provErr *jsonrpc.ProviderError
	if !errors.As(err, &provErr) {
		return false
	}

	return provErr.Code == rpcErrInvalidParameter || provErr.Code == rpcErrInvalidAddrOrKey
}
