package discord

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"eventpulse/internal/domain/entities"
	pkgdiscord "eventpulse/pkg/discord"
)

const createEventModalID = "create_event_modal"

const (
	fieldName     = "name"
	fieldLocation = "location"
	fieldDate     = "date"
	fieldTime     = "time"
	fieldCapacity = "capacity"
)

// HandleCreate opens the event creation modal.
func (h *Handler) HandleCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := string(i.Locale)
	input := func(id, labelKey, placeholderKey string, style discordgo.TextInputStyle) discordgo.ActionsRow {
		return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    id,
				Label:       h.translate(locale, labelKey, nil),
				Style:       style,
				Required:    true,
				Placeholder: h.translate(locale, placeholderKey, nil),
			},
		}}
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: createEventModalID,
			Title:    h.translate(locale, "discord.modal.title", nil),
			Components: []discordgo.MessageComponent{
				input(fieldName, "discord.modal.name", "discord.modal.name_hint", discordgo.TextInputShort),
				input(fieldLocation, "discord.modal.location", "discord.modal.location_hint", discordgo.TextInputParagraph),
				input(fieldDate, "discord.modal.date", "discord.modal.date_hint", discordgo.TextInputShort),
				input(fieldTime, "discord.modal.time", "discord.modal.time_hint", discordgo.TextInputShort),
				input(fieldCapacity, "discord.modal.capacity", "discord.modal.capacity_hint", discordgo.TextInputShort),
			},
		},
	})
}

// HandleCreateSubmit validates the modal and creates the event.
func (h *Handler) HandleCreateSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := string(i.Locale)
	values := pkgdiscord.ModalValues(i.ModalSubmitData())

	date, clock, err := pkgdiscord.ParseEventDateTime(values[fieldDate], values[fieldTime])
	if err != nil {
		respondEphemeral(s, i.Interaction, h.translate(locale, "discord.invalid_input", map[string]any{"Reason": err.Error()}))
		return
	}
	capacity, err := strconv.Atoi(strings.TrimSpace(values[fieldCapacity]))
	if err != nil || capacity <= 0 {
		respondEphemeral(s, i.Interaction, h.translate(locale, "discord.invalid_capacity", nil))
		return
	}
	now, err := h.clock.Now()
	if err != nil {
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}

	event := &entities.Event{
		Name:            values[fieldName],
		Location:        values[fieldLocation],
		Category:        entities.DefaultCategory,
		Date:            date,
		Time:            clock,
		MaxParticipants: capacity,
		CreatorID:       interactionUserID(i),
	}
	if err := h.eventUseCase.CreateEvent(context.Background(), event, now); err != nil {
		h.log.Warn().Err(err).Msg("create event from discord failed")
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(locale, "discord.created", map[string]any{
		"Name": event.Name,
		"When": pkgdiscord.FormatEventDateTime(event.Date, event.Time),
	}))
}
