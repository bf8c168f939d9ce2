package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"eventpulse/internal/adapters/discord"
	"eventpulse/internal/bootstrap"
	"eventpulse/internal/config"
	"eventpulse/internal/infrastructure/logger"
	"eventpulse/internal/platform/otel"
	"eventpulse/pkg/tz"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", false)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty).With().Str("service", "bot").Logger()
	if err := cfg.RequireDiscord(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, "eventpulse-bot", cfg.OTelEndpoint)
	if err != nil {
		log.Warn().Err(err).Msg("tracing disabled")
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	repos, err := bootstrap.OpenRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer repos.Close()

	svc, err := bootstrap.NewServices(cfg, repos, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}
	defer svc.Close()

	handler := discord.NewHandler(svc.Events, svc.Participants, svc.Points, tz.SystemNormalizer(), svc.Translator, log)
	bot, err := discord.NewBot(cfg.DiscordToken, cfg.DiscordGuildID, handler, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}
	if err := bot.Start(ctx); err != nil {
		log.Error().Err(err).Msg("bot stopped with error")
		os.Exit(1)
	}
}
