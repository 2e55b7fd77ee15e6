package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError reports a non-success response status from the backend
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Client signals the generation backend to cancel an in-flight stream.
type Client struct {
	baseURL  string
	stopPath string
	client   *http.Client
}

// NewClient creates a stop-signal client. The timeout bounds the whole
// round trip of each stop request.
func NewClient(baseURL, stopPath string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:  baseURL,
		stopPath: stopPath,
		client:   &http.Client{Timeout: timeout},
	}
}

type stopPayload struct {
	SessionID string `json:"session_id"`
	ChatID    string `json:"chat_id"`
}

// Stop posts a cancellation for the session. Success is exactly HTTP 200;
// any other status is returned as a *StatusError. The request is attempted
// once, without retries.
func (c *Client) Stop(ctx context.Context, sessionID, chatID string) error {
	body, err := json.Marshal(stopPayload{SessionID: sessionID, ChatID: chatID})
	if err != nil {
		return fmt.Errorf("failed to marshal stop payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.stopPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}
