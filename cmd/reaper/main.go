// Command reaper runs one cleanup pass and exits. Schedule it externally
// (cron, Kubernetes CronJob); a failed run is retried by the next one.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventpulse/internal/application"
	"eventpulse/internal/bootstrap"
	"eventpulse/internal/config"
	"eventpulse/internal/infrastructure/logger"
	"eventpulse/internal/platform/otel"
	"eventpulse/pkg/tz"
)

const runTimeout = 2 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", false)
		bootLog.Error().Err(err).Msg("failed to load configuration")
		return 1
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty).With().Str("service", "reaper").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	shutdownTracing, err := otel.Setup(ctx, "eventpulse-reaper", cfg.OTelEndpoint)
	if err != nil {
		log.Warn().Err(err).Msg("tracing disabled")
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	now, err := tz.SystemNormalizer().Now()
	if err != nil {
		log.Error().Err(err).Msg("cannot read clock")
		return 1
	}

	repos, err := bootstrap.OpenRepositories(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to open database")
		return 1
	}
	defer repos.Close()

	reaper := application.NewReaperService(repos.Events, repos.Participants, log)
	res, err := reaper.RunCleanup(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("cleanup failed")
		return 1
	}
	log.Info().
		Str("cutoff", res.Cutoff.String()).
		Int64("deleted_count", res.DeletedCount).
		Strs("deleted_events", res.DeletedIDs).
		Msg("cleanup finished")
	return 0
}
