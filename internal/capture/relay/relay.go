// Package relay makes the single delivery attempt of a record to the store.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"formtrail/internal/submission/models"
)

var tracer = otel.Tracer("formtrail/internal/capture/relay")

// Kind classifies a delivery attempt.
type Kind string

const (
	KindDelivered        Kind = "delivered"
	KindRejectedByServer Kind = "rejected_by_server"
	KindNetworkFailure   Kind = "network_failure"
)

// Outcome is the result of one delivery attempt. It is observed, never retried.
type Outcome struct {
	Kind       Kind
	DocumentID string
	Status     int
	Reason     string
}

func Delivered(documentID string) Outcome {
	return Outcome{Kind: KindDelivered, DocumentID: documentID}
}

func RejectedByServer(status int) Outcome {
	return Outcome{Kind: KindRejectedByServer, Status: status}
}

func NetworkFailure(reason string) Outcome {
	return Outcome{Kind: KindNetworkFailure, Reason: reason}
}

func (o Outcome) String() string {
	switch o.Kind {
	case KindDelivered:
		return "delivered as " + o.DocumentID
	case KindRejectedByServer:
		return fmt.Sprintf("rejected by server with status %d", o.Status)
	default:
		return "network failure: " + o.Reason
	}
}

// Client posts records to <baseURL>/submit.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a Client. timeout bounds the whole attempt; a timeout is reported
// as an ordinary network failure.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a Client around an existing http.Client.
func NewWithHTTPClient(baseURL string, client *http.Client) *Client {
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/submit",
		http:     client,
	}
}

// Send makes exactly one attempt to persist sub.
func (c *Client) Send(ctx context.Context, sub models.Submission) Outcome {
	ctx, span := tracer.Start(ctx, "relay.Send")
	defer span.End()

	outcome := c.send(ctx, sub)
	span.SetAttributes(attribute.String("relay.outcome", string(outcome.Kind)))
	if outcome.Kind != KindDelivered {
		span.SetStatus(codes.Error, outcome.String())
	}
	return outcome
}

func (c *Client) send(ctx context.Context, sub models.Submission) Outcome {
	body, err := json.Marshal(models.NewSubmitRequest(sub))
	if err != nil {
		return NetworkFailure(fmt.Sprintf("encode record: %v", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return NetworkFailure(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return NetworkFailure(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return RejectedByServer(resp.StatusCode)
	}

	var created models.SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return NetworkFailure(fmt.Sprintf("decode response: %v", err))
	}
	if created.DocumentID == "" {
		return NetworkFailure("response missing documentId")
	}
	return Delivered(created.DocumentID)
}
