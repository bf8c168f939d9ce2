package entities

import (
	"context"
	"fmt"
	"time"

	"eventpulse/internal/domain"
	"eventpulse/pkg/tz"
	"eventpulse/pkg/validator"
)

// Event is a scheduled activity. Date and Time are wall values in tz.Reference;
// CurrentParticipants is only changed by join and cancel.
type Event struct {
	ID                  string
	Name                string   `validate:"notblank,max=255"`
	Description         string   `validate:"max=4000"`
	Location            string   `validate:"notblank,max=255"`
	Category            Category `validate:"oneof=sports arts_culture education professional entertainment wellness family social"`
	Date                tz.Date
	Time                tz.TimeOfDay
	MaxParticipants     int    `validate:"gt=0"`
	CurrentParticipants int    `validate:"gte=0,ltefield=MaxParticipants"`
	CreatorID           string `validate:"notblank"`
	CreatedAt           time.Time
}

// EffectiveAt is the instant every lifecycle rule is measured against.
func (e *Event) EffectiveAt() time.Time {
	return tz.Combine(e.Date, e.Time)
}

func (e *Event) IsFull() bool {
	return e.CurrentParticipants >= e.MaxParticipants
}

// Validate enforces the canonical event shape before it reaches a store.
func (e *Event) Validate(ctx context.Context) error {
	if err := validator.Validate(ctx, e); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidEvent, err)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: event date is required", domain.ErrInvalidEvent)
	}
	if !e.Time.Valid() {
		return fmt.Errorf("%w: event time %s is out of range", domain.ErrInvalidEvent, e.Time)
	}
	return nil
}
