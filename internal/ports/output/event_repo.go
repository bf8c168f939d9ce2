package output

import (
	"context"

	"eventpulse/internal/domain/entities"
	"eventpulse/pkg/tz"
)

// EventFilter narrows List. A zero value lists everything.
type EventFilter struct {
	// City matches the location case-insensitively as a substring.
	City string
}

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	// List returns events ordered by date, time, then creation.
	List(ctx context.Context, filter EventFilter) ([]entities.Event, error)
	ListByCreator(ctx context.Context, creatorID string) ([]entities.Event, error)
	// ListExpired returns ids of events dated before cutoff.Today, or dated
	// cutoff.Today with a time before cutoff.Time.
	ListExpired(ctx context.Context, cutoff tz.Moment) ([]string, error)
	// DeleteByIDs removes events and returns the ids of the rows it actually
	// deleted. Unknown or already deleted ids are ignored.
	DeleteByIDs(ctx context.Context, ids []string) ([]string, error)
}
