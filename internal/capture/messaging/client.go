package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPMessenger delivers messages to a background host's listener.
type HTTPMessenger struct {
	endpoint string
	client   *http.Client
}

// NewHTTPMessenger targets <baseURL>/messages. A nil client uses http.DefaultClient.
func NewHTTPMessenger(baseURL string, client *http.Client) *HTTPMessenger {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPMessenger{
		endpoint: strings.TrimRight(baseURL, "/") + "/messages",
		client:   client,
	}
}

// Send posts msg once. Any status other than 202 is an error.
func (m *HTTPMessenger) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("send message: unexpected status %d", resp.StatusCode)
	}
	return nil
}
