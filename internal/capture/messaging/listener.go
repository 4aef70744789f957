package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"formtrail/internal/platform/middleware"
	dErrors "formtrail/pkg/domain-errors"
	"formtrail/pkg/platform/httputil"
)

const maxMessageBytes = 16 << 10

// Dispatcher accepts a message for handling. Dispatch must not block on the
// work the message triggers.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// Listener exposes the host side of the boundary over HTTP.
type Listener struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewListener creates a Listener.
func NewListener(dispatcher Dispatcher, logger *slog.Logger) *Listener {
	return &Listener{dispatcher: dispatcher, logger: logger}
}

// Register registers the message route with the chi router.
func (l *Listener) Register(r chi.Router) {
	r.Post("/messages", l.handleMessage)
}

// handleMessage answers 202: the response to the page is always asynchronous.
func (l *Listener) handleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var msg Message
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageBytes)).Decode(&msg); err != nil {
		l.logger.WarnContext(ctx, "invalid message body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid message."))
		return
	}

	l.logger.InfoContext(ctx, "message received",
		"request_id", requestID,
		"type", string(msg.Type),
	)

	if err := msg.Validate(); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "Unknown message type."))
		return
	}
	if err := l.dispatcher.Dispatch(ctx, msg); err != nil {
		if errors.Is(err, ErrUnknownType) {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "Unknown message type."))
			return
		}
		l.logger.ErrorContext(ctx, "failed to dispatch message",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted, httputil.MessageResponse{Message: "Accepted."})
}
