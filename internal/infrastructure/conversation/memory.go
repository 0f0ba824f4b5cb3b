// Package conversation stores in-progress edit state, one entry per
// (chat, user) pair.
package conversation

import (
	"context"
	"sync"

	"bannerbot/internal/domain/entities"
	"bannerbot/internal/ports/output"
)

var _ output.ConversationStore = (*MemoryStore)(nil)

// MemoryStore keeps state in process memory; it is lost on restart.
type MemoryStore struct {
	mu     sync.Mutex
	states map[entities.ConversationKey]entities.ConversationState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[entities.ConversationKey]entities.ConversationState)}
}

func (s *MemoryStore) Get(_ context.Context, key entities.ConversationKey) (*entities.ConversationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[key]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *MemoryStore) Put(_ context.Context, key entities.ConversationKey, state *entities.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[key] = *state
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key entities.ConversationKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, key)
	return nil
}
