package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"eventpulse/internal/domain/lifecycle"
	"eventpulse/internal/ports/input"
	"eventpulse/internal/ports/output"
)

const (
	colorOpen    = 0x57F287
	colorClosing = 0xFEE75C
	colorFull    = 0xED4245
	colorClosed  = 0x99AAB5
)

// maxDescription keeps embeds well under Discord's 4096 character limit.
const maxDescription = 1000

func formatPlaces(current, max int) string {
	return fmt.Sprintf("%d/%d", current, max)
}

func embedColor(s lifecycle.State) int {
	switch {
	case s.IsStarted:
		return colorClosed
	case s.IsFull:
		return colorFull
	case s.IsClosingSoon:
		return colorClosing
	default:
		return colorOpen
	}
}

// EventEmbed renders one listed event with its badges.
func EventEmbed(v input.EventView, t output.T, locale string) *discordgo.MessageEmbed {
	e := v.Event
	badges := make([]string, 0, 2)
	for _, b := range v.State.Badges() {
		badges = append(badges, t.T(locale, "badge."+string(b), nil))
	}

	desc := e.Description
	if len(desc) > maxDescription {
		desc = desc[:maxDescription] + "…"
	}

	return &discordgo.MessageEmbed{
		Title:       e.Name,
		Description: desc,
		Color:       embedColor(v.State),
		Fields: []*discordgo.MessageEmbedField{
			{Name: t.T(locale, "embed.when", nil), Value: FormatEventDateTime(e.Date, e.Time), Inline: true},
			{Name: t.T(locale, "embed.where", nil), Value: e.Location, Inline: true},
			{Name: t.T(locale, "embed.spots", nil), Value: formatPlaces(e.CurrentParticipants, e.MaxParticipants), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: t.T(locale, "category."+string(e.Category), nil) + " • " + strings.Join(badges, " • "),
		},
	}
}
