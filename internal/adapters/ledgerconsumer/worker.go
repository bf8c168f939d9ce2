// Package ledgerconsumer stores ledger entries queued by the API and bot.
package ledgerconsumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"eventpulse/internal/domain"
	"eventpulse/internal/infrastructure/rabbit"
	"eventpulse/internal/ports/output"
)

type source interface {
	Consume(ctx context.Context, handler rabbit.Handler) error
}

type Worker struct {
	source source
	repo   output.LedgerRepository
	log    zerolog.Logger
}

func NewWorker(src source, repo output.LedgerRepository, log zerolog.Logger) *Worker {
	return &Worker{source: src, repo: repo, log: log}
}

// Run blocks until ctx is cancelled or the source fails.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info().Msg("🐇 ledger worker started")
	defer w.log.Info().Msg("🛑 ledger worker stopped")
	return w.source.Consume(ctx, w.Handle)
}

// Handle stores one queued entry. Malformed or invalid entries are discarded;
// store failures are returned so the message is retried.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	entry, err := rabbit.DecodeLedgerEntry(body)
	if err != nil {
		return err
	}
	if err := w.repo.Append(ctx, &entry); err != nil {
		if errors.Is(err, domain.ErrInvalidLedgerEntry) {
			return fmt.Errorf("%w: %v", rabbit.ErrDiscard, err)
		}
		return fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
	}
	w.log.Info().
		Int64("entry_id", entry.ID).
		Str("user_id", entry.UserID).
		Str("event_id", entry.EventID).
		Int("points", entry.Points).
		Msg("ledger entry stored")
	return nil
}
