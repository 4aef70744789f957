package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// SubmitRequest is the body of POST /submit. Fields are kept as raw strings so
// the Store can tell "absent" apart from "present but malformed".
type SubmitRequest struct {
	Gmail     string `json:"gmail"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

// NewSubmitRequest renders a record in its wire form.
func NewSubmitRequest(s Submission) SubmitRequest {
	return SubmitRequest{
		Gmail:     s.Identity.String(),
		Title:     s.FormLabel.String(),
		Timestamp: FormatTimestamp(s.SubmittedAt),
	}
}

// SubmitResponse is returned with 201 Created.
type SubmitResponse struct {
	Message    string `json:"message"`
	DocumentID string `json:"documentId"`
}

// SubmissionResponse is one element of GET /logs.
type SubmissionResponse struct {
	ID        string `json:"_id"`
	Gmail     string `json:"gmail"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

// ToResponse converts a persisted record to its wire form.
func ToResponse(s Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:        s.ID.String(),
		Gmail:     s.Identity.String(),
		Title:     s.FormLabel.String(),
		Timestamp: FormatTimestamp(s.SubmittedAt),
	}
}

// FromResponse parses a wire record. A record with an unparseable id or timestamp
// is rejected rather than half-filled.
func FromResponse(r SubmissionResponse) (Submission, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return Submission{}, fmt.Errorf("parse record id %q: %w", r.ID, err)
	}
	ts, err := ParseTimestamp(r.Timestamp)
	if err != nil {
		return Submission{}, err
	}
	return Submission{
		ID:          id,
		Identity:    ResolvedIdentity(r.Gmail),
		FormLabel:   KnownLabel(r.Title),
		SubmittedAt: ts,
	}, nil
}

func (s Submission) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToResponse(s))
}

func (s *Submission) UnmarshalJSON(data []byte) error {
	var r SubmissionResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	parsed, err := FromResponse(r)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
