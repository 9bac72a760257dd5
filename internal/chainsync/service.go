// Package chainsync drives the polling loop: on a fixed cadence it compares
// the persisted progress pointer against the chain tip and hands every new
// height, strictly in order, to a block processor, checkpointing after each
// fully processed block.
package chainsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fmarchini/whalewatch/internal/pkg/logger"
	"github.com/fmarchini/whalewatch/internal/pkg/resilience/retry"
)

// Service runs the polling loop.
type Service interface {
	// Run polls until ctx is canceled. It returns ctx.Err() on cancellation
	// and a non-nil error only for failures that must stop the process,
	// i.e. a failed checkpoint write.
	Run(ctx context.Context) error
}

type service struct {
	chain       Chain
	checkpoints CheckpointStorage
	processor   BlockProcessor

	pollInterval time.Duration
	batchSize    uint64
	retry        retry.Retry
}

var _ Service = (*service)(nil)

// Run executes one cycle immediately, then one per tick. Cycles are strictly
// serialized: the loop handles the next tick only after the current cycle has
// finished, so a slow catch-up can never overlap with itself. Overdue ticks
// coalesce into a single one.
func (s *service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	if err := s.cycle(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.cycle(ctx); err != nil {
				return err
			}
		}
	}
}

// cycle performs one poll iteration. Transient failures (tip fetch, checkpoint
// load, block processing) are logged and end the cycle early; the next tick
// retries from the last durable pointer. Only a failed checkpoint write is
// returned, which stops Run.
func (s *service) cycle(ctx context.Context) error {
	tip, err := s.chain.TipHeight(ctx)
	if err != nil {
		logger.Error(ctx, "failed to fetch chain tip", "error", err)
		return nil
	}

	last, err := s.checkpoints.LoadLatestCheckpoint(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoCheckpointFound) {
			logger.Error(ctx, "failed to load checkpoint", "error", err)
			return nil
		}

		// First run: start at the tip instead of replaying chain history,
		// otherwise a fresh deployment would flood the channel with alerts
		// for old blocks.
		if err := s.checkpoints.SaveCheckpoint(ctx, tip); err != nil {
			return fmt.Errorf("%w: %v", ErrCheckpointSave, err)
		}

		logger.Info(ctx, "initialized checkpoint at chain tip", "block.height", tip)
		return nil
	}

	if tip <= last {
		return nil
	}

	end := min(tip, last+s.batchSize)
	for height := last + 1; height <= end; height++ {
		if err := s.processBlock(ctx, height); err != nil {
			logger.Error(ctx, "block processing failed, aborting catch-up batch",
				"block.height", height,
				"checkpoint.height", height-1,
				"error", err,
			)
			return nil
		}

		if err := s.checkpoints.SaveCheckpoint(ctx, height); err != nil {
			return fmt.Errorf("%w: %v", ErrCheckpointSave, err)
		}
	}

	return nil
}

func (s *service) processBlock(ctx context.Context, height uint64) error {
	operation := func() error {
		return s.processor.ProcessBlock(ctx, height)
	}

	if s.retry != nil {
		return s.retry.Execute(ctx, operation)
	}
	return operation()
}

type config struct {
	pollInterval time.Duration
	batchSize    uint64
	retry        retry.Retry
}

// Option customizes the service built by New.
type Option func(*config)

// WithPollInterval sets the cycle cadence. Default: 8 seconds, well under the
// chain's block interval so new blocks are not missed.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollInterval = d
	}
}

// WithBatchSize bounds how many heights one cycle may process, so that
// catch-up after an outage cannot starve the timer indefinitely.
// Default: 50.
func WithBatchSize(n uint64) Option {
	return func(c *config) {
		c.batchSize = n
	}
}

// WithRetry wraps per-height processing in the given retry strategy for
// transient RPC failures.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// New builds the poll driver.
func New(chain Chain, checkpoints CheckpointStorage, processor BlockProcessor, opts ...Option) *service {
	cfg := config{
		pollInterval: 8 * time.Second,
		batchSize:    50,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		chain:        chain,
		checkpoints:  checkpoints,
		processor:    processor,
		pollInterval: cfg.pollInterval,
		batchSize:    cfg.batchSize,
		retry:        cfg.retry,
	}
}
