package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"bannerbot/internal/domain/entities"
)

const handlerTimeout = 30 * time.Second

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	logger  *slog.Logger
}

// NewSession creates a session with the intents needed to read commands
// and edit messages in guild channels and DMs.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
	return s, nil
}

func NewBot(session *discordgo.Session, handler *Handler, logger *slog.Logger) *Bot {
	bot := &Bot{session: session, handler: handler, logger: logger}
	bot.setupHandlers()
	return bot
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleMessage)
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	key := entities.ConversationKey{ChatID: m.ChannelID, UserID: m.Author.ID}
	r := b.handler.HandleMessage(ctx, key, m.Content, firstImage(m.Attachments))
	if r.Text == "" {
		return
	}
	if err := sendReply(s, m.ChannelID, m.Reference(), r); err != nil {
		b.logger.Error("send reply",
			slog.String("channel_id", m.ChannelID),
			slog.String("error", err.Error()),
		)
	}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	cmd, ok := slashAliases[data.Name]
	if !ok {
		return
	}
	var userID string
	switch {
	case i.Member != nil && i.Member.User != nil:
		userID = i.Member.User.ID
	case i.User != nil:
		userID = i.User.ID
	default:
		return
	}
	var args string
	for _, opt := range data.Options {
		if opt.Name == "user" {
			args = fmt.Sprint(opt.Value)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	key := entities.ConversationKey{ChatID: i.ChannelID, UserID: userID}
	r := b.handler.Execute(ctx, key, cmd, args)
	if r.Text == "" {
		return
	}
	if err := respondInteraction(s, i.Interaction, r); err != nil {
		b.logger.Error("respond to interaction",
			slog.String("command", data.Name),
			slog.String("error", err.Error()),
		)
	}
}

// Run connects, registers slash commands and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	if _, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, "", applicationCommands()); err != nil {
		b.logger.Warn("register slash commands", slog.String("error", err.Error()))
	}

	b.logger.Info("bot online", slog.String("user", b.session.State.User.Username))
	<-ctx.Done()
	return nil
}
