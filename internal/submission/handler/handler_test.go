package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formtrail/internal/platform/middleware"
	"formtrail/internal/submission/models"
	"formtrail/internal/submission/service"
	"formtrail/internal/submission/store"
	"formtrail/pkg/testutil"
)

type failingStore struct{}

func (failingStore) Insert(context.Context, models.Submission) error {
	return errors.New("connection refused")
}

func (failingStore) List(context.Context) ([]models.Submission, error) {
	return nil, errors.New("connection refused")
}

func newSubmissionRouter(t *testing.T, st service.Store) *chi.Mux {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	svc, err := service.New(st, service.WithLogger(logger))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	New(svc, logger).Register(r)
	return r
}

func validRequest() models.SubmitRequest {
	return models.SubmitRequest{
		Gmail:     "user@example.com",
		Title:     "Customer Survey",
		Timestamp: "2024-03-05T10:20:30.123Z",
	}
}

func TestSubmitCreatesRecord(t *testing.T) {
	router := newSubmissionRouter(t, store.NewInMemoryStore())

	rr := testutil.PostSubmission(t, router, validRequest())
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating submission, got %d", rr.Code)
	}

	resp := testutil.DecodeJSON[models.SubmitResponse](t, rr)
	assert.Equal(t, "Data saved successfully!", resp.Message)
	_, err := uuid.Parse(resp.DocumentID)
	assert.NoError(t, err, "documentId should be a uuid")
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	router := newSubmissionRouter(t, store.NewInMemoryStore())

	cases := map[string]func(r *models.SubmitRequest){
		"gmail":     func(r *models.SubmitRequest) { r.Gmail = "" },
		"title":     func(r *models.SubmitRequest) { r.Title = "  " },
		"timestamp": func(r *models.SubmitRequest) { r.Timestamp = "" },
	}
	for field, mutate := range cases {
		t.Run("missing "+field, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			rr := testutil.PostSubmission(t, router, req)
			testutil.AssertStatusAndMessage(t, rr, http.StatusBadRequest, "Missing required fields.")
		})
	}

	assert.Empty(t, testutil.ListSubmissions(t, router), "rejected submissions must not be stored")
}

func TestSubmitRejectsMalformedTimestamp(t *testing.T) {
	router := newSubmissionRouter(t, store.NewInMemoryStore())

	req := validRequest()
	req.Timestamp = "yesterday"
	rr := testutil.PostSubmission(t, router, req)
	testutil.AssertStatusAndMessage(t, rr, http.StatusBadRequest, "Invalid timestamp.")
}

func TestSubmitRejectsInvalidBody(t *testing.T) {
	router := newSubmissionRouter(t, store.NewInMemoryStore())

	rr := testutil.DoRequest(router, testutil.NewRawJSONRequest(t, http.MethodPost, "/submit", "{not json"))
	testutil.AssertStatusAndMessage(t, rr, http.StatusBadRequest, "Invalid request body.")
}

func TestSubmitStoreUnavailable(t *testing.T) {
	router := newSubmissionRouter(t, failingStore{})

	rr := testutil.PostSubmission(t, router, validRequest())
	testutil.AssertStatusAndMessage(t, rr, http.StatusInternalServerError, "Failed to save data.")
}

func TestListLogs(t *testing.T) {
	t.Run("empty store returns an empty array", func(t *testing.T) {
		router := newSubmissionRouter(t, store.NewInMemoryStore())

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/logs"))
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("created records are listed with canonical fields", func(t *testing.T) {
		router := newSubmissionRouter(t, store.NewInMemoryStore())

		req := validRequest()
		req.Timestamp = "2024-03-05T12:20:30.123456+02:00"
		id := testutil.MustCreate(t, router, req)

		records := testutil.ListSubmissions(t, router)
		require.Len(t, records, 1)

		got := records[0]
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "user@example.com", got.Gmail)
		assert.Equal(t, "Customer Survey", got.Title)
		assert.Equal(t, "2024-03-05T10:20:30.123Z", got.Timestamp)
	})

	t.Run("store failure", func(t *testing.T) {
		router := newSubmissionRouter(t, failingStore{})

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/logs"))
		testutil.AssertStatusAndMessage(t, rr, http.StatusInternalServerError, "Failed to fetch data.")
	})
}
