package output

import (
	"context"

	"bannerbot/internal/domain/entities"
)

// ConversationStore keeps in-progress edit state per conversation.
// Get returns nil when the conversation is idle.
type ConversationStore interface {
	Get(ctx context.Context, key entities.ConversationKey) (*entities.ConversationState, error)
	Put(ctx context.Context, key entities.ConversationKey, state *entities.ConversationState) error
	Delete(ctx context.Context, key entities.ConversationKey) error
}
