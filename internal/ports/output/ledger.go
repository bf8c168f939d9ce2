package output

import (
	"context"

	"eventpulse/internal/domain/entities"
)

// LedgerRepository is append-only.
type LedgerRepository interface {
	Append(ctx context.Context, entry *entities.LedgerEntry) error
	ListByUser(ctx context.Context, userID string) ([]entities.LedgerEntry, error)
	SumByUser(ctx context.Context, userID string) (int, error)
}

// LedgerPublisher emits a ledger entry after the participation change has
// been committed. Delivery is best-effort.
type LedgerPublisher interface {
	Publish(ctx context.Context, entry entities.LedgerEntry) error
}
