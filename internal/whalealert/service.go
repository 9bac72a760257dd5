// Package whalealert scans blocks for transactions whose total output value
// crosses a fiat-denominated threshold, filters out self-transfers, and
// dispatches the remainder as alerts.
package whalealert

import (
	"context"

	"github.com/fmarchini/whalewatch/internal/pkg/logger"
	"github.com/fmarchini/whalewatch/internal/pkg/units"
)

// Service scans blocks and dispatches whale alerts.
type Service interface {
	// ScanBlock fetches the block at height and returns its alert-worthy
	// transactions, in block order. A missing block yields an empty result.
	ScanBlock(ctx context.Context, height uint64) ([]Alert, error)

	// ProcessBlock scans a block and dispatches every resulting alert.
	// Notification failures are logged but do not fail the block.
	ProcessBlock(ctx context.Context, height uint64) error
}

type service struct {
	chain    Blockchain
	rates    RateProvider
	notifier Notifier

	fiatThreshold         float64
	fallbackThresholdSats uint64
}

var _ Service = (*service)(nil)

// New builds the scanning service. fiatThreshold is the alert threshold in
// fiat; fallbackThresholdSats is applied whenever no exchange rate is
// available.
func New(chain Blockchain, rates RateProvider, notifier Notifier, fiatThreshold float64, fallbackThresholdSats uint64) *service {
	return &service{
		chain:                 chain,
		rates:                 rates,
		notifier:              notifier,
		fiatThreshold:         fiatThreshold,
		fallbackThresholdSats: fallbackThresholdSats,
	}
}

// thresholdSats resolves the current satoshi threshold. When a rate is
// available the fiat threshold is converted with ceiling rounding; otherwise
// the static fallback applies and the returned rate is marked unknown.
func (s *service) thresholdSats(ctx context.Context) (threshold uint64, rate float64, rateKnown bool) {
	rate, err := s.rates.Rate(ctx)
	if err != nil {
		logger.Warn(ctx, "exchange rate unavailable, using fallback threshold",
			"threshold.fallback", s.fallbackThresholdSats,
			"error", err,
		)
		return s.fallbackThresholdSats, 0, false
	}

	return units.ThresholdSats(s.fiatThreshold, rate), rate, true
}

// ScanBlock fetches the block at height and walks its transactions from
// index 1 onward; index 0 is the coinbase transaction and is always skipped.
// The threshold is resolved once per block, so a rate change between blocks
// takes effect on the next one.
func (s *service) ScanBlock(ctx context.Context, height uint64) ([]Alert, error) {
	block, err := s.chain.BlockByHeight(ctx, height)
	if err != nil {
		return nil, err
	}
	if block == nil {
		logger.Debug(ctx, "no block at height", "block.height", height)
		return nil, nil
	}

	threshold, rate, rateKnown := s.thresholdSats(ctx)

	var alerts []Alert
	for i, tx := range block.Transactions {
		if i == 0 {
			continue // coinbase
		}

		total := tx.TotalOutputValue()
		if total < threshold {
			continue
		}

		if s.isSelfTransfer(ctx, tx) {
			logger.Info(ctx, "large transaction filtered as self transfer",
				"block.height", height,
				"tx.id", tx.ID,
				"tx.total", total,
			)
			continue
		}

		alert := Alert{
			TxID:          tx.ID,
			Height:        height,
			TotalValue:    total,
			InputCount:    len(tx.Inputs),
			OutputCount:   len(tx.Outputs),
			LargestOutput: tx.LargestOutputValue(),
			OutputValues:  tx.OutputValues(),
			FiatRate:      rate,
			FiatRateKnown: rateKnown,
		}

		logger.Info(ctx, "large transaction detected",
			"block.height", height,
			"tx.id", tx.ID,
			"tx.total", total,
			"tx.inputs", alert.InputCount,
			"tx.outputs", alert.OutputCount,
		)

		alerts = append(alerts, alert)
	}

	return alerts, nil
}

// ProcessBlock scans the block at height and dispatches all its alerts. A
// failed delivery is logged and the remaining alerts are still dispatched;
// only a failed scan is reported to the caller.
func (s *service) ProcessBlock(ctx context.Context, height uint64) error {
	alerts, err := s.ScanBlock(ctx, height)
	if err != nil {
		return err
	}

	for _, alert := range alerts {
		if err := s.notifier.AlertLargeTransaction(ctx, alert); err != nil {
			logger.Error(ctx, "alert delivery failed",
				"block.height", alert.Height,
				"tx.id", alert.TxID,
				"error", err,
			)
		}
	}

	return nil
}
