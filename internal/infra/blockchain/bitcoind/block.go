package bitcoind

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fmarchini/whalewatch/internal/pkg/units"
	"github.com/fmarchini/whalewatch/internal/whalealert"
)

type (
	// ScriptPubKeyResponse is the locking-script object attached to every
	// transaction output in verbose node responses.
	ScriptPubKeyResponse struct {
		Asm       string   `json:"asm"`
		Hex       string   `json:"hex"`
		Address   string   `json:"address"`
		Addresses []string `json:"addresses"` // pre-22.0 nodes
		Type      string   `json:"type"`
	}

	// VinResponse is a transaction input in verbose node responses. For the
	// coinbase transaction, Coinbase is set and TxID is empty.
	VinResponse struct {
		TxID     string `json:"txid"`
		Vout     uint32 `json:"vout"`
		Coinbase string `json:"coinbase"`
	}

	// VoutResponse is a transaction output in verbose node responses. The
	// value is denominated in BTC, not satoshis.
	VoutResponse struct {
		Value        float64              `json:"value"`
		N            uint32               `json:"n"`
		ScriptPubKey ScriptPubKeyResponse `json:"scriptPubKey"`
	}

	// TransactionResponse is a verbose transaction, as returned both inside
	// getblock (verbosity 2) and by getrawtransaction (verbose).
	TransactionResponse struct {
		TxID string         `json:"txid"`
		Vin  []VinResponse  `json:"vin"`
		Vout []VoutResponse `json:"vout"`
	}

	// BlockResponse is a verbose block returned by getblock (verbosity 2).
	BlockResponse struct {
		Hash   string                `json:"hash"`
		Height uint64                `json:"height"`
		Time   int64                 `json:"time"`
		Tx     []TransactionResponse `json:"tx"`
	}
)

// ownership derives the ownership descriptor for an output. The address is
// the canonical identity when the node decodes one; otherwise the raw script
// hex stands in, which still compares equal for identical locks.
func (s ScriptPubKeyResponse) ownership() whalealert.Ownership {
	switch {
	case s.Address != "":
		return whalealert.Ownership{Descriptor: s.Address}
	case len(s.Addresses) == 1:
		return whalealert.Ownership{Descriptor: s.Addresses[0]}
	default:
		return whalealert.Ownership{Descriptor: s.Hex}
	}
}

func (t TransactionResponse) toDomain() whalealert.Transaction {
	inputs := make([]whalealert.Input, 0, len(t.Vin))
	for _, in := range t.Vin {
		if in.TxID == "" {
			continue // coinbase input, nothing to resolve
		}
		inputs = append(inputs, whalealert.Input{
			TxID: in.TxID,
			Vout: in.Vout,
		})
	}

	outputs := make([]whalealert.Output, len(t.Vout))
	for i, out := range t.Vout {
		outputs[i] = whalealert.Output{
			Value: units.ToSatoshis(out.Value),
			Owner: out.ScriptPubKey.ownership(),
		}
	}

	return whalealert.Transaction{
		ID:      t.TxID,
		Inputs:  inputs,
		Outputs: outputs,
	}
}

func (b BlockResponse) toDomain() *whalealert.Block {
	transactions := make([]whalealert.Transaction, len(b.Tx))
	for i, tx := range b.Tx {
		transactions[i] = tx.toDomain()
	}

	return &whalealert.Block{
		Height:       b.Height,
		Transactions: transactions,
	}
}

// TipHeight returns the node's current block count.
func (c *client) TipHeight(ctx context.Context) (uint64, error) {
	data, err := c.conn.Fetch(ctx, "getblockcount")
	if err != nil {
		return 0, err
	}

	var height uint64
	if err := json.Unmarshal(data, &height); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return height, nil
}

// BlockByHeight fetches the block at the given height with fully decoded
// transactions (getblockhash + getblock verbosity 2). A height beyond the
// current tip yields (nil, nil).
func (c *client) BlockByHeight(ctx context.Context, height uint64) (*whalealert.Block, error) {
	data, err := c.conn.Fetch(ctx, "getblockhash", height)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var hash string
	if err := json.Unmarshal(data, &hash); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	data, err = c.conn.Fetch(ctx, "getblock", hash, 2)
	if err != nil {
		return nil, err
	}

	var blockResponse BlockResponse
	if err := json.Unmarshal(data, &blockResponse); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return blockResponse.toDomain(), nil
}

// TransactionByHash fetches a transaction in verbose form. An unknown
// transaction yields (nil, nil). Note that pruned or non-txindex nodes may
// not serve arbitrary historical transactions.
func (c *client) TransactionByHash(ctx context.Context, hash string) (*whalealert.Transaction, error) {
	data, err := c.conn.Fetch(ctx, "getrawtransaction", hash, true)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var txResponse TransactionResponse
	if err := json.Unmarshal(data, &txResponse); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	tx := txResponse.toDomain()
	return &tx, nil
}
