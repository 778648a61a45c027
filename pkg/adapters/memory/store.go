// Package memory implements ports.ConversationStore in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/helioscommand/helios/pkg/domain"
)

// Store holds conversations in a map. Safe for concurrent use; persistence
// ends with the process.
type Store struct {
	data map[string]*domain.Conversation
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Conversation),
	}
}

// Save persists the conversation in memory.
func (s *Store) Save(ctx context.Context, conv *domain.Conversation) error {
	copied := clone(conv)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[conv.ID] = copied
	return nil
}

// Load retrieves a conversation by ID.
func (s *Store) Load(ctx context.Context, id string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.data[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	return clone(conv), nil
}

// Delete removes a conversation.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the IDs of all stored conversations.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

// clone copies a conversation so callers can't mutate stored state through
// retained pointers. Result payloads are immutable after creation, so a
// payload-level copy is sufficient.
func clone(conv *domain.Conversation) *domain.Conversation {
	copied := *conv
	copied.Messages = make([]domain.Turn, len(conv.Messages))
	copy(copied.Messages, conv.Messages)
	if conv.LastResult != nil {
		result := *conv.LastResult
		copied.LastResult = &result
	}
	return &copied
}
