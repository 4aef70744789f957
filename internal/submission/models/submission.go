package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the canonical wire form of SubmittedAt: UTC with millisecond
// precision, as produced by a browser's Date.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Submission is one detected form submission.
//
// Invariants:
//   - Identity and FormLabel always render as non-empty strings
//   - SubmittedAt is canonical (UTC, millisecond precision)
//   - ID is the zero UUID until the record has been persisted
//   - A persisted record is never updated or deleted
type Submission struct {
	ID          uuid.UUID
	Identity    Identity
	FormLabel   FormLabel
	SubmittedAt time.Time
}

// NewSubmission assembles a record that has not been persisted yet.
func NewSubmission(identity Identity, label FormLabel, submittedAt time.Time) Submission {
	return Submission{
		Identity:    identity,
		FormLabel:   label,
		SubmittedAt: CanonicalTime(submittedAt),
	}
}

// Persisted reports whether the Store has assigned an ID.
func (s Submission) Persisted() bool {
	return s.ID != uuid.Nil
}

// CanonicalTime normalizes t to UTC with millisecond precision.
func CanonicalTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// FormatTimestamp renders t in the canonical wire layout.
func FormatTimestamp(t time.Time) string {
	return CanonicalTime(t).Format(TimestampLayout)
}

// ParseTimestamp accepts any RFC 3339 timestamp and returns its canonical form.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return CanonicalTime(t), nil
}
