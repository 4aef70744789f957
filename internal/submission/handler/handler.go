package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"formtrail/internal/platform/middleware"
	"formtrail/internal/submission/models"
	dErrors "formtrail/pkg/domain-errors"
	"formtrail/pkg/platform/httputil"
)

const msgSaved = "Data saved successfully!"

// maxBodyBytes bounds POST /submit bodies; a submission is three short strings.
const maxBodyBytes = 64 << 10

// Service defines the store operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, req models.SubmitRequest) (uuid.UUID, error)
	List(ctx context.Context) ([]models.Submission, error)
}

// Handler serves the submission endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new submission Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the submission routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/submit", h.handleSubmit)
	r.Get("/logs", h.handleListLogs)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req models.SubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid submit request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request body."))
		return
	}

	id, err := h.service.Create(ctx, req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeMissingField) || dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.WarnContext(ctx, "submission rejected",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, models.SubmitResponse{
		Message:    msgSaved,
		DocumentID: id.String(),
	})
}

func (h *Handler) handleListLogs(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]models.SubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, models.ToResponse(sub))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
