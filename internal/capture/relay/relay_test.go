package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formtrail/internal/submission/models"
)

func testSubmission() models.Submission {
	return models.NewSubmission(
		models.ResolvedIdentity("user@example.com"),
		models.KnownLabel("Survey"),
		time.Date(2024, 3, 5, 10, 20, 30, 123456789, time.UTC),
	)
}

func TestSendDelivered(t *testing.T) {
	var got models.SubmitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/submit", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.SubmitResponse{Message: "Data saved successfully!", DocumentID: "doc-1"})
	}))
	defer srv.Close()

	out := New(srv.URL, time.Second).Send(context.Background(), testSubmission())

	assert.Equal(t, Delivered("doc-1"), out)
	assert.Equal(t, models.SubmitRequest{
		Gmail:     "user@example.com",
		Title:     "Survey",
		Timestamp: "2024-03-05T10:20:30.123Z",
	}, got)
}

func TestSendSentinelsOnTheWire(t *testing.T) {
	var got models.SubmitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok","documentId":"doc-2"}`))
	}))
	defer srv.Close()

	sub := models.NewSubmission(models.UnresolvedIdentity(), models.UnknownLabel(), time.Now())
	out := New(srv.URL, time.Second).Send(context.Background(), sub)

	assert.Equal(t, KindDelivered, out.Kind)
	assert.Equal(t, models.EmailNotFoundSentinel, got.Gmail)
	assert.Equal(t, models.UnknownFormSentinel, got.Title)
}

func TestSendClassification(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    Kind
		status  int
	}{
		{
			name: "bad request",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"Missing required fields."}`))
			},
			want:   KindRejectedByServer,
			status: http.StatusBadRequest,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want:   KindRejectedByServer,
			status: http.StatusInternalServerError,
		},
		{
			name: "undecodable success body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`<html>`))
			},
			want: KindNetworkFailure,
		},
		{
			name: "success body without documentId",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"message":"Data saved successfully!"}`))
			},
			want: KindNetworkFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			out := New(srv.URL, time.Second).Send(context.Background(), testSubmission())
			assert.Equal(t, tt.want, out.Kind)
			assert.Equal(t, tt.status, out.Status)
		})
	}
}

func TestSendConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out := New(url, time.Second).Send(context.Background(), testSubmission())
	assert.Equal(t, KindNetworkFailure, out.Kind)
	assert.NotEmpty(t, out.Reason)
}

func TestSendTimeoutIsNetworkFailureWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	out := New(srv.URL, 50*time.Millisecond).Send(context.Background(), testSubmission())

	assert.Equal(t, KindNetworkFailure, out.Kind)
	assert.Equal(t, int32(1), calls.Load())
}
