package ports

import (
	"context"

	"github.com/helioscommand/helios/pkg/domain"
)

// ConversationStore defines the interface for persisting conversation state.
// Persistence is per-process lifetime for the memory adapter and durable for
// the file and redis adapters.
type ConversationStore interface {
	// Save persists the conversation keyed by its ID.
	Save(ctx context.Context, conv *domain.Conversation) error

	// Load retrieves a conversation by ID.
	// Returns domain.ErrConversationNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.Conversation, error)

	// Delete removes a conversation.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored conversations.
	List(ctx context.Context) ([]string, error)
}
