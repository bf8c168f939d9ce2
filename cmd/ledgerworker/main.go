package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"eventpulse/internal/adapters/ledgerconsumer"
	"eventpulse/internal/bootstrap"
	"eventpulse/internal/config"
	"eventpulse/internal/infrastructure/logger"
	"eventpulse/internal/infrastructure/rabbit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", false)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty).With().Str("service", "ledgerworker").Logger()
	if err := cfg.RequireBroker(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := bootstrap.OpenRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer repos.Close()

	client, err := rabbit.NewClient(cfg.RabbitMQURL, cfg.RabbitMQLedgerQueue, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer client.Close()

	worker := ledgerconsumer.NewWorker(client, repos.Ledger, log)
	if err := worker.Run(ctx); err != nil {
		log.Error().Err(err).Msg("ledger worker stopped with error")
		os.Exit(1)
	}
}
