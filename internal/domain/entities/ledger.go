package entities

import (
	"context"
	"fmt"
	"time"

	"eventpulse/internal/domain"
	"eventpulse/pkg/validator"
)

// LedgerEntry is an append-only signed point record. EventID is optional.
type LedgerEntry struct {
	ID        int64
	UserID    string `validate:"notblank"`
	EventID   string
	Points    int    `validate:"ne=0"`
	Reason    string `validate:"notblank,max=255"`
	CreatedAt time.Time
}

func (l *LedgerEntry) Validate(ctx context.Context) error {
	if err := validator.Validate(ctx, l); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidLedgerEntry, err)
	}
	return nil
}
