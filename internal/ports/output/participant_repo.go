package output

import (
	"context"
	"time"

	"eventpulse/internal/domain/entities"
)

type ParticipantRepository interface {
	// Join inserts the participant and increments the event counter in one
	// transaction. It returns domain.ErrEventNotFound,
	// domain.ErrCapacityExceeded or domain.ErrDuplicateParticipation.
	Join(ctx context.Context, eventID, userID string, joinedAt time.Time) (*entities.Participant, error)
	// Leave deletes the participant and decrements the counter. It returns
	// domain.ErrParticipantNotFound when no join record exists.
	Leave(ctx context.Context, eventID, userID string) error
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	DeleteByEventIDs(ctx context.Context, eventIDs []string) (int64, error)
	CountByEventIDs(ctx context.Context, eventIDs []string) (int64, error)
}
