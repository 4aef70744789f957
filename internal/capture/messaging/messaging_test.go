package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formtrail/pkg/testutil"
)

type recordingDispatcher struct {
	mu       sync.Mutex
	messages []Message
	err      error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, msg Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
	return d.err
}

func (d *recordingDispatcher) received() []Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Message(nil), d.messages...)
}

func newListenerRouter(d Dispatcher) http.Handler {
	r := chi.NewRouter()
	NewListener(d, slog.New(slog.DiscardHandler)).Register(r)
	return r
}

func TestListenerAcceptsKnownMessages(t *testing.T) {
	d := &recordingDispatcher{}
	router := newListenerRouter(d)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/messages", Submitted("Survey")))
	testutil.AssertStatus(t, rr, http.StatusAccepted)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/messages", Opened()))
	testutil.AssertStatus(t, rr, http.StatusAccepted)

	got := d.received()
	require.Len(t, got, 2)
	assert.Equal(t, FormSubmitted, got[0].Type)
	assert.Equal(t, "Survey", got[0].Title())
	assert.Equal(t, FormOpened, got[1].Type)
	assert.Nil(t, got[1].Payload)
}

func TestListenerRejectsBadInput(t *testing.T) {
	d := &recordingDispatcher{}
	router := newListenerRouter(d)

	t.Run("unknown type", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRawJSONRequest(t, http.MethodPost, "/messages", `{"type":"FORM_CLOSED"}`))
		testutil.AssertStatusAndMessage(t, rr, http.StatusBadRequest, "Unknown message type.")
	})

	t.Run("malformed body", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRawJSONRequest(t, http.MethodPost, "/messages", `{"type":`))
		testutil.AssertStatusAndMessage(t, rr, http.StatusBadRequest, "Invalid message.")
	})

	assert.Empty(t, d.received(), "rejected messages are never dispatched")
}

func TestListenerDispatchFailure(t *testing.T) {
	router := newListenerRouter(&recordingDispatcher{err: errors.New("closed")})

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/messages", Opened()))
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
}

func TestMessageJSONShape(t *testing.T) {
	raw, err := json.Marshal(Submitted("Team Lunch"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FORM_SUBMITTED","payload":{"title":"Team Lunch"}}`, string(raw))

	raw, err = json.Marshal(Opened())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FORM_OPENED"}`, string(raw))
}

func TestHTTPMessengerRoundTrip(t *testing.T) {
	d := &recordingDispatcher{}
	srv := httptest.NewServer(newListenerRouter(d))
	defer srv.Close()

	m := NewHTTPMessenger(srv.URL+"/", srv.Client())
	require.NoError(t, m.Send(context.Background(), Submitted("Survey")))

	got := d.received()
	require.Len(t, got, 1)
	assert.Equal(t, "Survey", got[0].Title())
}

func TestHTTPMessengerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	m := NewHTTPMessenger(srv.URL, srv.Client())
	assert.ErrorContains(t, m.Send(context.Background(), Opened()), "unexpected status 400")

	srv.Close()
	assert.Error(t, m.Send(context.Background(), Opened()), "closed server is a send failure")
}
