// Package testutil holds request builders and assertions shared by the HTTP
// handler tests. Every non-list response in this service is a JSON object with
// a "message" field, and the helpers assume that shape.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formtrail/internal/submission/models"
)

// NewJSONRequest marshals body and builds a request carrying it.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err, "marshal request body")
	return NewRawJSONRequest(t, method, path, string(raw))
}

// NewRawJSONRequest sends body verbatim, for malformed-payload cases.
func NewRawJSONRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// DoRequest serves req on handler and returns the recorded response.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// PostSubmission sends req to POST /submit.
func PostSubmission(t *testing.T, handler http.Handler, req models.SubmitRequest) *httptest.ResponseRecorder {
	t.Helper()
	return DoRequest(handler, NewJSONRequest(t, http.MethodPost, "/submit", req))
}

// MustCreate posts req, requires a 201 and returns the new document id.
func MustCreate(t *testing.T, handler http.Handler, req models.SubmitRequest) string {
	t.Helper()
	rr := PostSubmission(t, handler, req)
	require.Equal(t, http.StatusCreated, rr.Code, "create submission: %s", rr.Body.String())
	created := DecodeJSON[models.SubmitResponse](t, rr)
	require.NotEmpty(t, created.DocumentID, "created response has no documentId")
	return created.DocumentID
}

// ListSubmissions fetches GET /logs and requires a 200.
func ListSubmissions(t *testing.T, handler http.Handler) []models.SubmissionResponse {
	t.Helper()
	rr := DoRequest(handler, NewRequest(t, http.MethodGet, "/logs"))
	require.Equal(t, http.StatusOK, rr.Code, "list submissions: %s", rr.Body.String())
	return DecodeJSON[[]models.SubmissionResponse](t, rr)
}

// DecodeJSON decodes the recorded body into T without consuming it.
func DecodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&out),
		"decode response body %q", rr.Body.String())
	return out
}

func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code, body %s", rr.Body.String())
}

// AssertStatusAndMessage checks the status and the {message} envelope.
func AssertStatusAndMessage(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	AssertStatus(t, rr, status)
	envelope := DecodeJSON[struct {
		Message string `json:"message"`
	}](t, rr)
	assert.Equal(t, message, envelope.Message)
}

// AssertJSONField checks a single top-level string field of an object body.
func AssertJSONField(t *testing.T, rr *httptest.ResponseRecorder, key, expected string) {
	t.Helper()
	fields := DecodeJSON[map[string]any](t, rr)
	assert.Equal(t, expected, fields[key], "field %q", key)
}
