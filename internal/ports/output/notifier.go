package output

import (
	"context"

	"bannerbot/internal/domain/entities"
)

// Notification is one outbound message.
type Notification struct {
	Destination string
	Text        string
	Media       entities.MediaRef
}

// Notifier delivers notifications. A nil error means the message was accepted
// by the transport.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
