package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	guildID string
	log     zerolog.Logger
}

// NewBot creates the session; commands are registered by Start.
func NewBot(token, guildID string, handler *Handler, log zerolog.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	bot := &Bot{
		session: s,
		handler: handler,
		guildID: guildID,
		log:     log,
	}
	s.AddHandler(bot.handleInteraction)
	return bot, nil
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case commandEvents:
			b.handler.HandleEvents(s, i)
		case commandPoints:
			b.handler.HandlePoints(s, i)
		case commandCreate:
			b.handler.HandleCreate(s, i)
		}
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == createEventModalID {
			b.handler.HandleCreateSubmit(s, i)
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, joinButtonPrefix):
			b.handler.HandleJoin(s, i, strings.TrimPrefix(customID, joinButtonPrefix))
		case strings.HasPrefix(customID, cancelButtonPrefix):
			b.handler.HandleCancel(s, i, strings.TrimPrefix(customID, cancelButtonPrefix))
		}
	}
}

// Start opens the session, registers the slash commands and blocks until
// ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range b.handler.Commands() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.guildID, cmd); err != nil {
			b.log.Warn().Err(err).Str("command", cmd.Name).Msg("failed to register command")
		}
	}

	b.log.Info().Msg("🤖 Bot online")
	<-ctx.Done()
	b.log.Info().Msg("bot shutting down")
	return nil
}
