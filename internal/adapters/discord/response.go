package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"bannerbot/internal/domain/entities"
	pkgdiscord "bannerbot/pkg/discord"
)

// messageSender is the part of *discordgo.Session used to post messages.
type messageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// mentionedUserID accepts a raw id or a mention (<@id>, <@!id>) and returns
// the first word stripped of mention markup.
func mentionedUserID(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}
	id := fields[0]
	if strings.HasPrefix(id, "<@") && strings.HasSuffix(id, ">") {
		id = strings.TrimPrefix(strings.TrimSuffix(id[2:], ">"), "!")
	}
	return id
}

// firstImage returns the URL of the first image attachment.
func firstImage(attachments []*discordgo.MessageAttachment) entities.MediaRef {
	for _, a := range attachments {
		if a == nil {
			continue
		}
		if strings.HasPrefix(a.ContentType, "image/") {
			return entities.MediaRef(a.URL)
		}
	}
	return ""
}

// buildMessages splits r into Discord messages. The image goes with the
// first one, which also carries the reply reference.
func buildMessages(text string, media entities.MediaRef, ref *discordgo.MessageReference) []*discordgo.MessageSend {
	chunks := pkgdiscord.SplitMessage(text, pkgdiscord.MessageLimit)
	out := make([]*discordgo.MessageSend, 0, len(chunks))
	for i, chunk := range chunks {
		m := &discordgo.MessageSend{
			Content:         chunk,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		}
		if i == 0 {
			m.Reference = ref
			if e := pkgdiscord.MediaEmbed(media); e != nil {
				m.Embeds = []*discordgo.MessageEmbed{e}
			}
		}
		out = append(out, m)
	}
	return out
}

func sendReply(s messageSender, channelID string, ref *discordgo.MessageReference, r reply) error {
	for _, m := range buildMessages(r.Text, r.Media, ref) {
		if _, err := s.ChannelMessageSendComplex(channelID, m); err != nil {
			return err
		}
	}
	return nil
}

func respondInteraction(s *discordgo.Session, i *discordgo.Interaction, r reply) error {
	msgs := buildMessages(r.Text, r.Media, nil)
	var flags discordgo.MessageFlags
	if r.private {
		flags = discordgo.MessageFlagsEphemeral
	}
	first := msgs[0]
	if err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         first.Content,
			Embeds:          first.Embeds,
			AllowedMentions: first.AllowedMentions,
			Flags:           flags,
		},
	}); err != nil {
		return err
	}
	for _, m := range msgs[1:] {
		if _, err := s.FollowupMessageCreate(i, true, &discordgo.WebhookParams{
			Content:         m.Content,
			AllowedMentions: m.AllowedMentions,
			Flags:           flags,
		}); err != nil {
			return err
		}
	}
	return nil
}
