package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"formtrail/internal/submission/models"
	"formtrail/pkg/platform/sentinel"
)

// InMemoryStore keeps submissions in a map. Used for development and tests.
type InMemoryStore struct {
	mu          sync.RWMutex
	submissions map[uuid.UUID]models.Submission
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{submissions: make(map[uuid.UUID]models.Submission)}
}

func (s *InMemoryStore) Insert(_ context.Context, submission models.Submission) error {
	if !submission.Persisted() {
		return fmt.Errorf("insert submission without id: %w", sentinel.ErrUnavailable)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.submissions[submission.ID]; exists {
		return fmt.Errorf("insert submission %s: duplicate id", submission.ID)
	}
	s.submissions[submission.ID] = submission
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		out = append(out, sub)
	}
	return out, nil
}

func (s *InMemoryStore) Health(_ context.Context) error {
	return nil
}
