package httptransport_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formtrail/internal/submission/handler"
	"formtrail/internal/submission/models"
	"formtrail/internal/submission/service"
	"formtrail/internal/submission/store"
	httptransport "formtrail/internal/transport/http"
	"formtrail/pkg/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	svc, err := service.New(store.NewInMemoryStore(), service.WithLogger(logger))
	require.NoError(t, err)
	return httptransport.NewRouter(httptransport.RouterConfig{Logger: logger}, handler.New(svc, logger))
}

func TestRouterScaffold(t *testing.T) {
	router := newRouter(t)

	testutil.Given(t, "a router with the submission module", func(t *testing.T) {
		testutil.When(t, "GET /health is requested", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))

			testutil.Then(t, "it reports ok", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				testutil.AssertJSONField(t, rr, "status", "ok")
			})
		})

		testutil.When(t, "a request carries an X-Request-ID", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodGet, "/health")
			req.Header.Set("X-Request-ID", "req-123")
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "the id is echoed back", func(t *testing.T) {
				assert.Equal(t, "req-123", rr.Header().Get("X-Request-ID"))
			})
		})

		testutil.When(t, "a submission is posted and the log is listed", func(t *testing.T) {
			id := testutil.MustCreate(t, router, models.SubmitRequest{
				Gmail:     "user@example.com",
				Title:     "Survey",
				Timestamp: "2024-01-01T00:00:00.000Z",
			})
			records := testutil.ListSubmissions(t, router)

			testutil.Then(t, "the submission is created and listed", func(t *testing.T) {
				require.Len(t, records, 1)
				assert.Equal(t, id, records[0].ID)
				assert.Equal(t, "Survey", records[0].Title)
			})
		})

		testutil.When(t, "a body is sent with a non-JSON content type", func(t *testing.T) {
			req := testutil.NewRawJSONRequest(t, http.MethodPost, "/submit", "gmail=a")
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "it is refused", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusUnsupportedMediaType)
			})
		})

		testutil.When(t, "an unknown route is requested", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/missing"))

			testutil.Then(t, "it is not found", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusNotFound)
			})
		})
	})
}

func TestRouterHealthCheckFailure(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:      logger,
		HealthCheck: func(context.Context) error { return errors.New("db down") },
	})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	testutil.AssertJSONField(t, rr, "status", "unavailable")
}
