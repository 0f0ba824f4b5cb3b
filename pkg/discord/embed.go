package discord

import (
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"bannerbot/internal/domain/entities"
	"bannerbot/internal/ports/input"
	"bannerbot/internal/ports/output"
	"bannerbot/pkg/tz"
)

const (
	embedColor = 0x5865F2

	// MessageLimit is the longest message content Discord accepts.
	MessageLimit = 2000
)

// FormatRemaining renders a countdown, or the "ended" text once it is over.
func FormatRemaining(tr output.T, locale string, r tz.Remaining) string {
	if r.Expired {
		return tr.T(locale, "time.ended", nil)
	}
	return tr.T(locale, "time.remaining", map[string]any{
		"Days":    r.Days,
		"Hours":   r.Hours,
		"Minutes": r.Minutes,
		"Seconds": r.Seconds,
	})
}

// RenderContent renders a fixed section: title, banner name, then one
// countdown per region that has a deadline.
func RenderContent(tr output.T, locale string, v *input.ContentView) string {
	title := v.Title
	if title == "" {
		title = tr.T(locale, "section."+string(v.Section), nil)
	}
	parts := []string{tr.T(locale, "show.header", map[string]any{"Title": title})}
	if v.Name != "" {
		parts = append(parts, tr.T(locale, "show.name", map[string]any{"Name": v.Name}))
	}
	for _, r := range v.Regions {
		parts = append(parts, tr.T(locale, "show.region", map[string]any{
			"Region":    tr.T(locale, "region."+string(r.Region), nil),
			"Remaining": FormatRemaining(tr, locale, r.Remaining),
		}))
	}
	return strings.Join(parts, "\n\n")
}

// RenderEvents renders the numbered event list.
func RenderEvents(tr output.T, locale string, events []input.EventView) string {
	if len(events) == 0 {
		return tr.T(locale, "events.empty", nil)
	}
	parts := []string{tr.T(locale, "events.header", nil)}
	for i, e := range events {
		parts = append(parts, tr.T(locale, "events.item", map[string]any{
			"Index":     i + 1,
			"Name":      e.Name,
			"Remaining": FormatRemaining(tr, locale, e.Remaining),
		}))
	}
	return strings.Join(parts, "\n\n")
}

// MediaEmbed wraps an image reference in an embed; nil when there is none.
func MediaEmbed(media entities.MediaRef) *discordgo.MessageEmbed {
	if media == "" {
		return nil
	}
	return &discordgo.MessageEmbed{
		Color: embedColor,
		Image: &discordgo.MessageEmbedImage{URL: string(media)},
	}
}

// SplitMessage cuts text into chunks of at most limit runes, preferring to
// break on a newline.
func SplitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}
	var chunks []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	if rest := strings.TrimRight(string(runes), "\n"); rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}
