package input

import (
	"context"

	"eventpulse/internal/domain/entities"
	"eventpulse/internal/domain/lifecycle"
	"eventpulse/internal/ports/output"
	"eventpulse/pkg/tz"
)

// EventView pairs an event with its derived state at the time of the read.
type EventView struct {
	Event entities.Event
	State lifecycle.State
}

type EventUseCase interface {
	GetVisibleEvents(ctx context.Context, now tz.Moment, filter output.EventFilter) ([]EventView, error)
	ClassifyEvent(ctx context.Context, eventID string, now tz.Moment) (*EventView, error)
	CreateEvent(ctx context.Context, event *entities.Event, now tz.Moment) error
	CancelEvent(ctx context.Context, eventID, creatorID string) error
	GetEventsByCreatorID(ctx context.Context, creatorID string) ([]entities.Event, error)
}
