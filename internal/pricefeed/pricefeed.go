// Package pricefeed caches a single fiat-per-BTC exchange rate with a TTL,
// refreshing it from an external source on expiry and degrading to the last
// known value when the source is unreachable.
package pricefeed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fmarchini/whalewatch/internal/pkg/logger"
)

// ErrRateUnavailable is returned by Rate when no rate has ever been fetched
// successfully and the source is currently failing.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// RateSource fetches the current fiat-per-BTC rate from an external feed.
type RateSource interface {
	// FetchRate returns the current rate. Implementations must reject
	// non-positive rates and enforce their own request timeout.
	FetchRate(ctx context.Context) (float64, error)
}

// Service exposes the cached exchange rate.
type Service interface {
	// Rate returns the cached rate if it is still fresh; otherwise it
	// attempts a single refresh. On refresh failure it returns the last
	// known rate, or ErrRateUnavailable if none exists. Rate never blocks
	// longer than one bounded source call.
	Rate(ctx context.Context) (float64, error)
}

type service struct {
	source RateSource
	ttl    time.Duration

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time

	now func() time.Time
}

var _ Service = (*service)(nil)

func (s *service) Rate(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.fetchedAt.IsZero() && now.Sub(s.fetchedAt) < s.ttl {
		return s.rate, nil
	}

	rate, err := s.source.FetchRate(ctx)
	if err != nil {
		if s.fetchedAt.IsZero() {
			return 0, ErrRateUnavailable
		}

		logger.Warn(ctx, "rate refresh failed, serving stale rate",
			"rate", s.rate,
			"rate.age", now.Sub(s.fetchedAt).String(),
			"error", err,
		)
		return s.rate, nil
	}

	s.rate = rate
	s.fetchedAt = now
	return rate, nil
}

type config struct {
	ttl time.Duration
	now func() time.Time
}

// Option customizes the service built by New.
type Option func(*config)

// WithTTL sets how long a fetched rate stays fresh. Default: 5 minutes.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// WithNowFunc overrides the clock, for tests.
func WithNowFunc(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// New builds a price cache backed by the given source.
func New(source RateSource, opts ...Option) *service {
	cfg := config{
		ttl: 5 * time.Minute,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		source: source,
		ttl:    cfg.ttl,
		now:    cfg.now,
	}
}
