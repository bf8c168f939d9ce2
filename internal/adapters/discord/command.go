package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"eventpulse/internal/ports/output"
	pkgdiscord "eventpulse/pkg/discord"
)

const (
	commandEvents = "eventos"
	commandPoints = "pontos"
	commandCreate = "criar-evento"

	optionCity = "cidade"
)

// Discord allows five action rows per message; each listed event gets one.
const maxListedEvents = 5

func (h *Handler) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandEvents,
			Description: h.translate("", "discord.command.events", nil),
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionCity,
				Description: h.translate("", "discord.option.city", nil),
				Required:    false,
			}},
		},
		{Name: commandPoints, Description: h.translate("", "discord.command.points", nil)},
		{Name: commandCreate, Description: h.translate("", "discord.command.create", nil)},
	}
}

// HandleEvents lists the visible events with join and cancel buttons.
func (h *Handler) HandleEvents(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := string(i.Locale)
	now, err := h.clock.Now()
	if err != nil {
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}

	filter := output.EventFilter{}
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == optionCity {
			filter.City = opt.StringValue()
		}
	}

	ctx := context.Background()
	views, err := h.eventUseCase.GetVisibleEvents(ctx, now, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("list events failed")
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}
	if len(views) == 0 {
		respondEphemeral(s, i.Interaction, h.translate(locale, "events.none", nil))
		return
	}

	shown := views
	if len(shown) > maxListedEvents {
		shown = shown[:maxListedEvents]
	}
	embeds := make([]*discordgo.MessageEmbed, 0, len(shown))
	components := make([]discordgo.MessageComponent, 0, len(shown))
	userID := interactionUserID(i)
	for _, v := range shown {
		embeds = append(embeds, pkgdiscord.EventEmbed(v, h.translator, locale))
		components = append(components, h.eventRow(ctx, locale, userID, v))
	}
	content := ""
	if hidden := len(views) - len(shown); hidden > 0 {
		content = h.translate(locale, "events.more", map[string]any{"Count": hidden})
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     embeds,
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

func (h *Handler) HandlePoints(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := string(i.Locale)
	score, err := h.pointsUseCase.GetScore(context.Background(), interactionUserID(i))
	if err != nil {
		h.log.Error().Err(err).Msg("get score failed")
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(locale, "points.score", map[string]any{"Total": score.Total}))
}
