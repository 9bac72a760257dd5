// Package jsonrpc implements a generic JSON-RPC 2.0 client over HTTP. It
// works against any JSON-RPC endpoint, including Bitcoin-family node RPC
// interfaces, which additionally require HTTP basic authentication.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrProviderReturnedError indicates that the remote server answered with a
// JSON-RPC error object rather than a result.
var ErrProviderReturnedError = errors.New("provider error")

// ProviderError carries the code and message of a JSON-RPC error object. It
// matches ErrProviderReturnedError under errors.Is; adapters that need the
// numeric code (e.g. to distinguish "not found" from real failures) extract
// it with errors.As.
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: [%d] - %s", ErrProviderReturnedError.Error(), e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return ErrProviderReturnedError
}

// response represents a standard JSON-RPC 2.0 response envelope.
type response struct {
	JsonRPC string `json:"jsonrpc"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Result json.RawMessage `json:"result"`
}

// Err returns a *ProviderError if the response carries a JSON-RPC error
// object, nil otherwise.
func (r response) Err() error {
	if r.Error == nil {
		return nil
	}

	return &ProviderError{Code: r.Error.Code, Message: r.Error.Message}
}

// Client is the transport-level JSON-RPC interface, abstracted to ease
// mocking in adapter tests.
type Client interface {
	// Fetch sends a JSON-RPC request with the given method and positional
	// parameters, returning the raw result payload.
	Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

type client struct {
	providerEndpoint string
	httpClient       *http.Client

	basicAuthUser     string
	basicAuthPassword string
}

var _ Client = (*client)(nil)

// Option customizes the client built by NewClient.
type Option func(*client)

// WithBasicAuth attaches HTTP basic auth credentials to every request.
// Bitcoin-family node RPC endpoints reject unauthenticated calls.
func WithBasicAuth(user, password string) Option {
	return func(c *client) {
		c.basicAuthUser = user
		c.basicAuthPassword = password
	}
}

// Fetch sends a JSON-RPC request to the remote server. The request id is a
// fresh UUID string.
func (c *client) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      uuid.NewString(),
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.providerEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.basicAuthUser != "" || c.basicAuthPassword != "" {
		req.SetBasicAuth(c.basicAuthUser, c.basicAuthPassword)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var data response
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, err
	}

	return data.Result, data.Err()
}

// NewClient returns a Client sending requests to providerEndpoint through
// httpClient.
func NewClient(httpClient *http.Client, providerEndpoint string, opts ...Option) *client {
	c := &client{
		providerEndpoint: providerEndpoint,
		httpClient:       httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}
