package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("uses default configuration when no options are provided", func(t *testing.T) {
		client := NewClient()

		require.NotNil(t, client)
		assert.Nil(t, client.Logger, "internal retry logger should be disabled")
		assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout, "default timeout should be 5s")
		assert.Equal(t, 1*time.Second, client.RetryWaitMin, "default retryWaitMin should be 1s")
		assert.Equal(t, 5*time.Second, client.RetryWaitMax, "default retryWaitMax should be 5s")
		assert.Equal(t, 2, client.RetryMax, "default retryMax should be 2")
	})

	t.Run("applies all custom options correctly", func(t *testing.T) {
		timeout := 9 * time.Second
		retryWaitMin := 111 * time.Millisecond
		retryWaitMax := 3 * time.Second
		retryMaxAttempts := 7

		client := NewClient(
			WithTimeout(timeout),
			WithRetryWaitMin(retryWaitMin),
			WithRetryWaitMax(retryWaitMax),
			WithRetryMax(retryMaxAttempts),
		)

		require.NotNil(t, client)
		assert.Equal(t, timeout, client.HTTPClient.Timeout, "custom timeout should be applied")
		assert.Equal(t, retryWaitMin, client.RetryWaitMin, "custom retryWaitMin should be applied")
		assert.Equal(t, retryWaitMax, client.RetryWaitMax, "custom retryWaitMax should be applied")
		assert.Equal(t, retryMaxAttempts, client.RetryMax, "custom retryMax should be applied")
	})
}

func TestWithTimeout(t *testing.T) {
	cfg := &config{}
	timeout := 10 * time.Second

	opt := WithTimeout(timeout)
	require.NotNil(t, opt)

	opt(cfg)
	assert.Equal(t, timeout, cfg.timeout, "timeout should be set correctly")
}

func TestWithRetryWaitMin(t *testing.T) {
	cfg := &config{}
	min := 500 * time.Millisecond

	opt := WithRetryWaitMin(min)
	require.NotNil(t, opt)

	opt(cfg)
	assert.Equal(t, min, cfg.retryWaitMin, "retryWaitMin should be set correctly")
}

func TestWithRetryWaitMax(t *testing.T) {
	cfg := &config{}
	max := 8 * time.Second

	opt := WithRetryWaitMax(max)
	require.NotNil(t, opt)

	opt(cfg)
	assert.Equal(t, max, cfg.retryWaitMax, "retryWaitMax should be set correctly")
}

func TestWithRetryMax(t *testing.T) {
	cfg := &config{}
	retries := 5

	opt := WithRetryMax(retries)
	require.NotNil(t, opt)

	opt(cfg)
	assert.Equal(t, retries, cfg.retryMax, "retryMax should be set correctly")
}
