// Package telegram implements the whalealert.Notifier port using the
// Telegram bot API's sendMessage method.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fmarchini/whalewatch/internal/whalealert"
)

// DefaultBaseURL is the public Telegram bot API host.
const DefaultBaseURL = "https://api.telegram.org"

// ErrSendRejected indicates the bot API answered with ok=false.
var ErrSendRejected = errors.New("telegram rejected message")

type client struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
	chatID     string
}

var _ whalealert.Notifier = (*client)(nil)

// NewClient returns a notifier posting to the given chat through the given
// bot.
func NewClient(httpClient *http.Client, baseURL, botToken, chatID string) *client {
	return &client{
		httpClient: httpClient,
		baseURL:    baseURL,
		botToken:   botToken,
		chatID:     chatID,
	}
}

// sendResponse is the envelope the bot API wraps every reply in.
type sendResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// AlertLargeTransaction renders the alert and posts it via sendMessage.
func (c *client) AlertLargeTransaction(ctx context.Context, alert whalealert.Alert) error {
	body, err := json.Marshal(map[string]any{
		"chat_id": c.chatID,
		"text":    formatAlert(alert),
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var data sendResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return err
	}

	if !data.OK {
		return fmt.Errorf("%w: %s", ErrSendRejected, data.Description)
	}

	return nil
}
