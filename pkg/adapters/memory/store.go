package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/wizard/pkg/domain"
)

// Store implements ports.AnswerRepository in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.AnswerStore
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.AnswerStore),
	}
}

// Save stores a copy of answers.
func (s *Store) Save(ctx context.Context, sessionID string, answers domain.AnswerStore) error {
	copied := answers.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load returns a copy so callers cannot mutate the stored set.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.AnswerStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	answers, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrAnswersNotFound
	}
	return answers.Clone(), nil
}

// Delete removes the answers.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the stored session IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.data)), nil
}
