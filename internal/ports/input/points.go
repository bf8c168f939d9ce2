package input

import (
	"context"
	"time"

	"eventpulse/internal/domain/entities"
	"eventpulse/internal/domain/points"
	"eventpulse/pkg/tz"
)

type Score struct {
	UserID  string
	Total   int
	Entries []entities.LedgerEntry
}

// Penalty describes a cancellation charge.
type Penalty struct {
	Points  int
	Tier    points.Tier
	Message string
}

type PointsUseCase interface {
	// AwardJoin credits the join bonus. Failures are logged, never returned.
	AwardJoin(ctx context.Context, locale, userID, eventID string) string
	// PenalizeCancellation charges the tiered penalty for cancelling an event
	// starting at effectiveAt. Ledger failures are logged, never returned.
	PenalizeCancellation(ctx context.Context, locale, userID, eventID string, effectiveAt time.Time, now tz.Moment) Penalty
	GetScore(ctx context.Context, userID string) (*Score, error)
}
