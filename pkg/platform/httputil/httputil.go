package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "formtrail/pkg/domain-errors"
)

// MessageResponse is the error envelope every endpoint uses.
type MessageResponse struct {
	Message string `json:"message"`
}

const genericFailure = "Internal server error."

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into status + {message}. Errors that are
// not domain errors never leak their text.
func WriteError(w http.ResponseWriter, err error) {
	de, ok := dErrors.As(err)
	if !ok {
		WriteJSON(w, http.StatusInternalServerError, MessageResponse{Message: genericFailure})
		return
	}
	msg := de.Message
	if msg == "" {
		msg = genericFailure
	}
	WriteJSON(w, dErrors.ToHTTPStatus(de.Code), MessageResponse{Message: msg})
}
