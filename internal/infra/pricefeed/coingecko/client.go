// Package coingecko implements the pricefeed.RateSource port on top of the
// public CoinGecko simple-price API. The endpoint is unauthenticated.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fmarchini/whalewatch/internal/pricefeed"
)

// DefaultBaseURL is the public CoinGecko API host.
const DefaultBaseURL = "https://api.coingecko.com"

const coinID = "bitcoin"

// ErrInvalidRate indicates the feed answered with a missing or non-positive
// rate, which is unusable for threshold conversion.
var ErrInvalidRate = errors.New("invalid exchange rate")

type client struct {
	httpClient *http.Client
	baseURL    string
	fiat       string
}

var _ pricefeed.RateSource = (*client)(nil)

// NewClient returns a rate source quoting BTC in the given fiat currency
// (lowercase ISO code, e.g. "usd").
func NewClient(httpClient *http.Client, baseURL, fiat string) *client {
	return &client{
		httpClient: httpClient,
		baseURL:    baseURL,
		fiat:       fiat,
	}
}

// FetchRate queries the simple-price endpoint and returns the fiat-per-BTC
// rate. Unreachable feed, unexpected status, unparseable body, and rates <= 0
// all surface as errors; the price cache decides how to degrade.
func (c *client) FetchRate(ctx context.Context) (float64, error) {
	endpoint := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL, coinID, url.QueryEscape(c.fiat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d from price feed", res.StatusCode)
	}

	var payload map[string]map[string]float64
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return 0, err
	}

	rate, ok := payload[coinID][c.fiat]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: %f", ErrInvalidRate, rate)
	}

	return rate, nil
}
