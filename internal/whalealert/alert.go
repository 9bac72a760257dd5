package whalealert

import "context"

// Alert describes a transaction whose total output value crossed the
// configured threshold and which is not a self-transfer.
type Alert struct {
	TxID          string   // transaction id, hex encoded
	Height        uint64   // block height the transaction was found in
	TotalValue    uint64   // sum of all output values, in satoshis
	InputCount    int      // number of inputs
	OutputCount   int      // number of outputs
	LargestOutput uint64   // largest single output value, in satoshis
	OutputValues  []uint64 // all output values, in output order
	FiatRate      float64  // fiat-per-BTC rate used for the threshold; zero when unknown
	FiatRateKnown bool     // whether FiatRate was available at scan time
}

// Notifier delivers alerts to the configured notification channel.
type Notifier interface {
	// AlertLargeTransaction renders and sends a single alert. Delivery
	// failures are reported to the caller but must not abort a scan.
	AlertLargeTransaction(ctx context.Context, alert Alert) error
}
