package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormLabel(t *testing.T) {
	assert.Equal(t, "Volunteer Signup", KnownLabel("  Volunteer Signup ").String())
	assert.True(t, KnownLabel("Feedback").Known())

	for _, blank := range []string{"", "   ", UnknownFormSentinel} {
		label := KnownLabel(blank)
		assert.False(t, label.Known(), "%q should be unknown", blank)
		assert.Equal(t, UnknownFormSentinel, label.String())
	}
	assert.Equal(t, UnknownFormSentinel, FormLabel{}.String())
}

func TestIdentity(t *testing.T) {
	assert.Equal(t, "a@example.com", ResolvedIdentity("a@example.com").String())
	assert.False(t, ResolvedIdentity("").Resolved())
	assert.False(t, ResolvedIdentity(EmailNotFoundSentinel).Resolved())
	assert.Equal(t, EmailNotFoundSentinel, UnresolvedIdentity().String())
}

func TestSentinelsSerializeAsPlainStrings(t *testing.T) {
	rec := NewSubmission(UnresolvedIdentity(), UnknownLabel(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	body, err := json.Marshal(NewSubmitRequest(rec))
	require.NoError(t, err)

	assert.JSONEq(t, `{"gmail":"Email Not Found","title":"Unknown Form","timestamp":"2024-01-01T00:00:00.000Z"}`, string(body))
}

func TestParseTimestamp(t *testing.T) {
	t.Run("normalizes offset and precision", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-06-01T02:00:00.123456+02:00")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01T00:00:00.123Z", FormatTimestamp(ts))
		assert.Equal(t, time.UTC, ts.Location())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseTimestamp("yesterday")
		assert.Error(t, err)
	})
}

func TestSubmissionJSON(t *testing.T) {
	id := uuid.New()
	rec := Submission{
		ID:          id,
		Identity:    ResolvedIdentity("a@example.com"),
		FormLabel:   KnownLabel("Feedback Form"),
		SubmittedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"`+id.String()+`","gmail":"a@example.com","title":"Feedback Form","timestamp":"2024-06-01T00:00:00.000Z"}`, string(body))

	var decoded Submission
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, rec, decoded)
	assert.True(t, decoded.Persisted())
}

func TestFromResponseRejectsMalformedRecords(t *testing.T) {
	_, err := FromResponse(SubmissionResponse{ID: "not-a-uuid", Timestamp: "2024-01-01T00:00:00Z"})
	assert.Error(t, err)

	_, err = FromResponse(SubmissionResponse{ID: uuid.NewString(), Timestamp: "not-a-time"})
	assert.Error(t, err)
}
