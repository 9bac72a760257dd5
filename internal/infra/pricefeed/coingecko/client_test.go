package coingecko

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRate(t *testing.T) {
	t.Run("returns the quoted rate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v3/simple/price", r.URL.Path)
			assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
			assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))

			w.Write([]byte(`{"bitcoin": {"usd": 65432.10}}`))
		}))
		defer server.Close()

		rate, err := NewClient(server.Client(), server.URL, "usd").FetchRate(t.Context())

		require.NoError(t, err)
		assert.Equal(t, 65432.10, rate)
	})

	t.Run("quotes in the configured fiat currency", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "eur", r.URL.Query().Get("vs_currencies"))
			w.Write([]byte(`{"bitcoin": {"eur": 60000}}`))
		}))
		defer server.Close()

		rate, err := NewClient(server.Client(), server.URL, "eur").FetchRate(t.Context())

		require.NoError(t, err)
		assert.Equal(t, 60000.0, rate)
	})

	t.Run("unexpected status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := NewClient(server.Client(), server.URL, "usd").FetchRate(t.Context())

		assert.Error(t, err)
	})

	t.Run("unparseable body is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		}))
		defer server.Close()

		_, err := NewClient(server.Client(), server.URL, "usd").FetchRate(t.Context())

		assert.Error(t, err)
	})

	t.Run("missing coin entry is an invalid rate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		_, err := NewClient(server.Client(), server.URL, "usd").FetchRate(t.Context())

		assert.ErrorIs(t, err, ErrInvalidRate)
	})

	t.Run("non-positive rate is an invalid rate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"bitcoin": {"usd": 0}}`))
		}))
		defer server.Close()

		_, err := NewClient(server.Client(), server.URL, "usd").FetchRate(t.Context())

		assert.ErrorIs(t, err, ErrInvalidRate)
	})

	t.Run("unreachable feed is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := NewClient(http.DefaultClient, server.URL, "usd").FetchRate(t.Context())

		assert.Error(t, err)
	})
}
