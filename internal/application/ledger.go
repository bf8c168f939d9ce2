package application

import (
	"context"

	"eventpulse/internal/domain/entities"
	"eventpulse/internal/ports/output"
)

var _ output.LedgerPublisher = (*DirectLedgerPublisher)(nil)

// DirectLedgerPublisher appends entries inline. It is used when no broker is
// configured and by the ledger consumer.
type DirectLedgerPublisher struct {
	repo output.LedgerRepository
}

func NewDirectLedgerPublisher(repo output.LedgerRepository) *DirectLedgerPublisher {
	return &DirectLedgerPublisher{repo: repo}
}

func (p *DirectLedgerPublisher) Publish(ctx context.Context, entry entities.LedgerEntry) error {
	return p.repo.Append(ctx, &entry)
}
