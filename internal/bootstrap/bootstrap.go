// Package bootstrap assembles the store and use cases shared by every binary.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"eventpulse/internal/application"
	"eventpulse/internal/config"
	"eventpulse/internal/infrastructure/database"
	"eventpulse/internal/infrastructure/i18n"
	"eventpulse/internal/infrastructure/rabbit"
	"eventpulse/internal/infrastructure/sqlite"
	"eventpulse/internal/ports/output"
)

// Repositories is the persistence selected by DATABASE_DRIVER.
type Repositories struct {
	Events       output.EventRepository
	Participants output.ParticipantRepository
	Ledger       output.LedgerRepository
	close        func()
}

func (r *Repositories) Close() {
	if r != nil && r.close != nil {
		r.close()
	}
}

// OpenRepositories connects to the configured database and applies
// migrations.
func OpenRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Repositories, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Events:       store.Events(),
			Participants: store.Participants(),
			Ledger:       store.Ledger(),
			close:        func() { _ = store.Close() },
		}, nil
	default:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return nil, err
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Repositories{
			Events:       database.NewEventRepository(pool),
			Participants: database.NewParticipantRepository(pool),
			Ledger:       database.NewLedgerRepository(pool),
			close:        pool.Close,
		}, nil
	}
}

// Services holds the use cases behind the API and the bot.
type Services struct {
	Events       *application.EventService
	Participants *application.ParticipantService
	Points       *application.PointsService
	Reaper       *application.ReaperService
	Translator   *i18n.Translator
	close        func()
}

func (s *Services) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// NewServices wires the use cases. Ledger entries go through RabbitMQ when
// RABBITMQ_URL is set and are appended inline otherwise.
func NewServices(cfg *config.Config, repos *Repositories, log zerolog.Logger) (*Services, error) {
	var (
		publisher output.LedgerPublisher = application.NewDirectLedgerPublisher(repos.Ledger)
		closeFn                          = func() {}
	)
	if cfg.UsesBroker() {
		client, err := rabbit.NewClient(cfg.RabbitMQURL, cfg.RabbitMQLedgerQueue, log)
		if err != nil {
			return nil, err
		}
		publisher = rabbit.NewLedgerPublisher(client)
		closeFn = client.Close
	}

	translator := i18n.NewTranslator(cfg.DefaultLocale, log)
	points := application.NewPointsService(publisher, repos.Ledger, translator, log)
	return &Services{
		Events:       application.NewEventService(repos.Events, repos.Participants, log),
		Participants: application.NewParticipantService(repos.Participants, repos.Events, points, log),
		Points:       points,
		Reaper:       application.NewReaperService(repos.Events, repos.Participants, log),
		Translator:   translator,
		close:        closeFn,
	}, nil
}
