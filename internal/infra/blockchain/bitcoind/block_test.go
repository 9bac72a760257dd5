package bitcoind

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fmarchini/whalewatch/internal/pkg/transport/jsonrpc"
	"github.com/fmarchini/whalewatch/internal/whalealert"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type jsonrpcMock struct {
	mock.Mock
}

func (m *jsonrpcMock) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	args := m.Called(ctx, method, params)

	var data json.RawMessage
	if v := args.Get(0); v != nil {
		data = v.(json.RawMessage)
	}
	return data, args.Error(1)
}

func TestTipHeight(t *testing.T) {
	t.Run("returns the block count", func(t *testing.T) {
		conn := new(jsonrpcMock)
		conn.On("Fetch", mock.Anything, "getblockcount", []any(nil)).
			Return(json.RawMessage(`905123`), nil)

		height, err := NewClient(conn).TipHeight(t.Context())

		require.NoError(t, err)
		assert.Equal(t, uint64(905123), height)
	})

	t.Run("transport error propagates", func(t *testing.T) {
		conn := new(jsonrpcMock)
		conn.On("Fetch", mock.Anything, "getblockcount", []any(nil)).
			Return(nil, errors.New("connection refused"))

		_, err := NewClient(conn).TipHeight(t.Context())

		assert.Error(t, err)
	})

	t.Run("non-numeric payload is malformed", func(t *testing.T) {
		conn := new(jsonrpcMock)
		conn.On("Fetch", mock.Anything, "getblockcount", []any(nil)).
			Return(json.RawMessage(`"oops"`), nil)

		_, err := NewClient(conn).TipHeight(t.Context())

		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestBlockByHeight(t *testing.T) {
	blockJSON := json.RawMessage(`{
		"hash": "00000000000000000001b2c3",
		"height": 905123,
		"time": 1756600000,
		"tx": [
			{
				"txid": "cb00",
				"vin": [{"coinbase": "04ffff001d", "vout": 4294967295}],
				"vout": [{"value": 3.125, "n": 0, "scriptPubKey": {"hex": "76a914", "address": "bc1qminer", "type": "witness_v0_keyhash"}}]
			},
			{
				"txid": "aa11",
				"vin": [{"txid": "ff00", "vout": 1}],
				"vout": [
					{"value": 0.15, "n": 0, "scriptPubKey": {"hex": "0014aa", "address": "bc1qalice", "type": "witness_v0_keyhash"}},
					{"value": 0.025, "n": 1, "scriptPubKey": {"hex": "0014bb", "addresses": ["1Bob"], "type": "pubkeyhash"}}
				]
			}
		]
	}`)

	t.Run("maps a verbose block into the domain model", func(t *testing.T) {
		conn := new(jsonrpcMock)
		conn.On("Fetch", mock.Anything, "getblockhash", []any{uint64(905123)}).
			Return(json.RawMessage(`"00000000000000000001b2c3"`), nil)
		conn.On("Fetch", mock.Anything, "getblock", []any{"00000000000000000001b2c3", 2}).
			Return(blockJSON, nil)

		block, err := NewClient(conn).BlockByHeight(t.Context(), 905123)

		require.NoError(t, err)
		require.NotNil(t, block)
		assert.Equal(t, uint64(905123), block.Height)
		require.Len(t, block.Transactions, 2)

		coinbase := block.Transactions[0]
		assert.Equal(t, "cb00", coinbase.ID)
		assert.Empty(t, coinbase.Inputs, "coinbase input carries no source reference")
		assert.Equal(t, uint64(312_500_000), coinbase.Outputs[0].Value)

		tx := block.Transactions[1]
		assert.Equal(t, "aa11", tx.ID)
		assert.Equal(t, []whalealert.Input{{TxID: "ff00", Vout: 1}}, tx.Inputs)
		require.Len(t, tx.Outputs, 2)
		assert.Equal(t, uint64(15_000_000), tx.Outputs[0].Value)
		assert.Equal(t, whalealert.Ownership{Descriptor: "bc1qalice"}, tx.Outputs[0].Owner)
		assert.Equal(t, uint64(2_500_000), tx.Outputs[1].Value)
		assert.Equal(t, whalealert.Ownership{Descriptor: "1Bob"}, tx.Outputs[1].Owner)
	})

	t.Run("height beyond the tip yields no block and no error", func(t *testing.T) {
		conn := new(jsonrpcMock)
		conn.On("Fetch", mock.Anything, "getblockhash", []any{uint64(999999999)}).
			Return(nil, &jsonrpc.ProviderError{Code: -8, Message: "Block height out of range"})

		block, err := NewClient(conn).BlockByHeight(t.Context(), 999999999)

		require.NoError(t, err)
		assert.Nil(t, block)
	})

	t.Run("malformed block payload surfaces as such", func(t *testing.T) {
		conn := new(jsonrpcMock)
		conn.On("Fetch", mock.Anything, "getblockhash", mock.Anything).
			Return(json.RawMessage(`"00000000000000000001b2c3"`), nil)
		conn.On("Fetch", mock.Anything, "getblock", mock.Anything).
			Return(json.RawMessage(`[]`), nil)

		_, err := NewClient(conn).BlockByHeight(t.Context(), 905123)

		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestTransactionByHash(t *testing.T) {
	t.Run("maps a verbose transaction", func(t *testing.T) {
		conn := new(jsonrpcMock)
		conn.On("Fetch", mock.Anything, "getrawtransaction", []any{"aa11", true}).
			Return(json.RawMessage(`{
				"txid": "aa11",
				"vin": [{"txid": "ff00", "vout": 0}],
				"vout": [{"value": 1.0, "n": 0, "scriptPubKey": {"hex": "0014cc", "type": "witness_v0_keyhash"}}]
			}`), nil)

		tx, err := NewClient(conn).TransactionByHash(t.Context(), "aa11")

		require.NoError(t, err)
		require.NotNil(t, tx)
		assert.Equal(t, "aa11", tx.ID)
		// No address decoded: the script hex stands in as the descriptor.
		assert.Equal(t, whalealert.Ownership{Descriptor: "0014cc"}, tx.Outputs[0].Owner)
	})

	t.Run("unknown transaction yields nil and no error", func(t *testing.T) {
		conn := new(jsonrpcMock)
		conn.On("Fetch", mock.Anything, "getrawtransaction", []any{"dead", true}).
			Return(nil, &jsonrpc.ProviderError{Code: -5, Message: "No such mempool or blockchain transaction"})

		tx, err := NewClient(conn).TransactionByHash(t.Context(), "dead")

		require.NoError(t, err)
		assert.Nil(t, tx)
	})

	t.Run("other provider errors propagate", func(t *testing.T) {
		conn := new(jsonrpcMock)
		conn.On("Fetch", mock.Anything, "getrawtransaction", mock.Anything).
			Return(nil, &jsonrpc.ProviderError{Code: -32600, Message: "Invalid Request"})

		_, err := NewClient(conn).TransactionByHash(t.Context(), "aa11")

		assert.ErrorIs(t, err, jsonrpc.ErrProviderReturnedError)
	})
}
