package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"bannerbot/internal/ports/output"
)

var _ output.Notifier = (*Notifier)(nil)

// Notifier posts alerts to a Discord channel.
type Notifier struct {
	sender messageSender
}

func NewNotifier(sender messageSender) *Notifier {
	return &Notifier{sender: sender}
}

// Notify posts exactly one message, cut to the first chunk when the text is
// too long, so a failed attempt never leaves part of an alert behind.
func (n *Notifier) Notify(ctx context.Context, msg output.Notification) error {
	m := buildMessages(msg.Text, msg.Media, nil)[0]
	if _, err := n.sender.ChannelMessageSendComplex(msg.Destination, m, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send to channel %s: %w", msg.Destination, err)
	}
	return nil
}
