package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"eventpulse/internal/ports/input"
	pkgdiscord "eventpulse/pkg/discord"
)

const (
	joinButtonPrefix   = "btn_join_"
	cancelButtonPrefix = "btn_cancel_"
)

// Button labels are capped well below Discord's 80 character limit.
const maxLabelName = 40

// eventRow builds the buttons of one listed event for userID. The cancel
// button is only offered to users who joined.
func (h *Handler) eventRow(ctx context.Context, locale, userID string, v input.EventView) discordgo.ActionsRow {
	joined, err := h.participantUseCase.IsParticipant(ctx, userID, v.Event.ID)
	if err != nil {
		h.log.Warn().Err(err).Str("event_id", v.Event.ID).Str("user_id", userID).Msg("participation lookup failed")
		joined = false
	}
	return h.eventButtons(locale, v.Event.ID, v.Event.Name, v.State.CanJoin(), joined)
}

func (h *Handler) eventButtons(locale, eventID, name string, canJoin, joined bool) discordgo.ActionsRow {
	if r := []rune(name); len(r) > maxLabelName {
		name = strings.TrimSpace(string(r[:maxLabelName])) + "…"
	}
	row := discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			Label:    h.translate(locale, "events.button.join", nil) + ": " + name,
			Style:    discordgo.SuccessButton,
			CustomID: joinButtonPrefix + eventID,
			Disabled: !canJoin || joined,
		},
	}}
	if joined {
		row.Components = append(row.Components, discordgo.Button{
			Label:    h.translate(locale, "events.button.cancel", nil),
			Style:    discordgo.DangerButton,
			CustomID: cancelButtonPrefix + eventID,
		})
	}
	return row
}

func (h *Handler) HandleJoin(s *discordgo.Session, i *discordgo.InteractionCreate, eventID string) {
	locale := string(i.Locale)
	now, err := h.clock.Now()
	if err != nil {
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}
	userID := interactionUserID(i)
	ctx := context.Background()

	res, err := h.participantUseCase.JoinEvent(ctx, locale, userID, eventID, now)
	if err != nil {
		h.log.Info().Err(err).Str("event_id", eventID).Str("user_id", userID).Msg("join refused")
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(locale, "events.joined", nil)+"\n"+res.Message)
}

func (h *Handler) HandleCancel(s *discordgo.Session, i *discordgo.InteractionCreate, eventID string) {
	locale := string(i.Locale)
	now, err := h.clock.Now()
	if err != nil {
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}
	userID := interactionUserID(i)

	res, err := h.participantUseCase.CancelParticipation(context.Background(), locale, userID, eventID, now)
	if err != nil {
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}
	respondEphemeral(s, i.Interaction, res.Message)
}
