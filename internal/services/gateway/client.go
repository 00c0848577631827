// Package gateway talks to the pro-talk inference endpoint.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type askRequest struct {
	BotID   int    `json:"bot_id"`
	ChatID  string `json:"chat_id"`
	Message string `json:"message"`
}

// Client sends chat-scoped requests to the inference API with bounded retry.
type Client struct {
	baseURL    string
	botID      int
	maxRetries int
	httpClient *http.Client
	sleep      func(time.Duration)
}

func NewClient(baseURL string, botID int, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		baseURL:    baseURL,
		botID:      botID,
		maxRetries: maxRetries,
		httpClient: &http.Client{Timeout: timeout},
		sleep:      time.Sleep,
	}
}

// Send posts content to the API under the key "chat_<chatID>_<messageID>".
// Non-string content is serialized to JSON. Transport failures and non-2xx
// statuses are retried up to maxRetries attempts with 2^attempt seconds of
// backoff between them; the last failure is returned to the caller.
func (c *Client) Send(ctx context.Context, chatID int64, messageID int, content any) (map[string]any, error) {
	message, err := encodeMessage(content)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	payload, err := json.Marshal(askRequest{
		BotID:   c.botID,
		ChatID:  fmt.Sprintf("chat_%d_%d", chatID, messageID),
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			c.sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}

		resp, err := c.post(ctx, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		log.Warn().
			Err(err).
			Int64("chat_id", chatID).
			Int("attempt", attempt+1).
			Int("max_retries", c.maxRetries).
			Msg("API request failed")
	}

	return nil, fmt.Errorf("API request failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) post(ctx context.Context, payload []byte) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return body, nil
}

func encodeMessage(content any) (string, error) {
	if s, ok := content.(string); ok {
		return s, nil
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
