// Package retry wraps retry-go behind a small interface with functional
// options. The default strategy is exponential backoff, which fits the
// transient-failure profile of node RPC and public HTTP APIs.
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes operations with automatic retries on failure.
type Retry interface {
	// Execute runs operation, retrying on error according to the configured
	// parameters. The operation must be idempotent. Execute returns nil on
	// success, the accumulated error(s) when all attempts fail, or the
	// context error when ctx is canceled mid-retry.
	Execute(ctx context.Context, operation func() error) error
}

type config struct {
	attempts    uint
	delay       time.Duration
	maxDelay    time.Duration
	lastErrOnly bool
}

// Option customizes the retry behavior built by New.
type Option func(*config)

type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	return retry.Do(operation,
		retry.Context(ctx),
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.DelayType(retry.BackOffDelay),
	)
}

// New builds a Retry with the given options. Defaults: 3 attempts, 1s base
// delay, 5s max delay, last error only.
func New(opts ...Option) *retrier {
	cfg := config{
		attempts:    3,
		delay:       time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{cfg: cfg}
}

// WithAttempts sets the maximum number of attempts (including the first).
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay between attempts.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential backoff delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly controls whether Execute returns only the final attempt's
// error (true, the default) or all attempt errors combined.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}
