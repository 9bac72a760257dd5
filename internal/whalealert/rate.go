package whalealert

import "context"

// RateProvider supplies the current fiat-per-BTC exchange rate. The pricefeed
// service implements it.
type RateProvider interface {
	// Rate returns the current rate, or an error when no usable rate is
	// available. Callers must degrade to a static satoshi threshold on
	// error.
	Rate(ctx context.Context) (float64, error)
}
