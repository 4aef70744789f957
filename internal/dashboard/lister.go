package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"formtrail/internal/submission/models"
)

// Lister fetches every stored record.
type Lister interface {
	List(ctx context.Context) ([]models.SubmissionResponse, error)
}

// HTTPLister reads records from the store's GET /logs endpoint.
type HTTPLister struct {
	endpoint string
	client   *http.Client
}

// NewHTTPLister targets <baseURL>/logs. A nil client uses http.DefaultClient.
func NewHTTPLister(baseURL string, client *http.Client) *HTTPLister {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLister{
		endpoint: strings.TrimRight(baseURL, "/") + "/logs",
		client:   client,
	}
}

func (l *HTTPLister) List(ctx context.Context) ([]models.SubmissionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("list records: HTTP error status %d", resp.StatusCode)
	}

	var records []models.SubmissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
