package input

import (
	"context"

	"bannerbot/internal/domain/entities"
)

// Message is one inbound operator message fed to an edit in progress.
// Media is set when the message carries an image.
type Message struct {
	Text  string
	Media entities.MediaRef
}

// EditFlowUseCase drives the multi-step content edit. Replies are localized
// text for the operator; a non-nil error alongside a reply is a recoverable
// input error.
type EditFlowUseCase interface {
	Start(ctx context.Context, key entities.ConversationKey, callerID string, section entities.Section, locale string) (string, error)
	Handle(ctx context.Context, key entities.ConversationKey, msg Message) (string, error)
	Cancel(ctx context.Context, key entities.ConversationKey) (bool, error)
	Active(ctx context.Context, key entities.ConversationKey) (bool, error)
}
