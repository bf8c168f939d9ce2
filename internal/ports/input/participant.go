package input

import (
	"context"

	"eventpulse/internal/domain/entities"
	"eventpulse/internal/domain/points"
	"eventpulse/pkg/tz"
)

// JoinResult carries the stored registration and the award message.
type JoinResult struct {
	Participant *entities.Participant
	Message     string
}

// CancelResult carries what the user forfeited, for messaging.
type CancelResult struct {
	Penalty int
	Tier    points.Tier
	Message string
}

type ParticipantUseCase interface {
	JoinEvent(ctx context.Context, locale, userID, eventID string, now tz.Moment) (*JoinResult, error)
	CancelParticipation(ctx context.Context, locale, userID, eventID string, now tz.Moment) (*CancelResult, error)
	IsParticipant(ctx context.Context, userID, eventID string) (bool, error)
}
