package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"eventpulse/internal/domain"
	"eventpulse/internal/domain/lifecycle"
	"eventpulse/internal/ports/input"
	"eventpulse/internal/ports/output"
	"eventpulse/pkg/tz"
)

var _ input.ParticipantUseCase = (*ParticipantService)(nil)

type ParticipantService struct {
	participantRepo output.ParticipantRepository
	eventRepo       output.EventRepository
	points          input.PointsUseCase
	log             zerolog.Logger
}

func NewParticipantService(
	participantRepo output.ParticipantRepository,
	eventRepo output.EventRepository,
	points input.PointsUseCase,
	log zerolog.Logger,
) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		points:          points,
		log:             log,
	}
}

// JoinEvent registers userID on eventID and credits the join award once the
// registration is stored.
func (s *ParticipantService) JoinEvent(ctx context.Context, locale, userID, eventID string, now tz.Moment) (res *input.JoinResult, err error) {
	ctx, span := startSpan(ctx, "participants.join", trace.WithAttributes(
		attribute.String("event_id", eventID),
		attribute.String("user_id", userID),
	))
	defer func() { endSpan(span, err) }()

	if now.IsZero() {
		return nil, domain.ErrClockUnavailable
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	exists, err := s.participantRepo.Exists(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("check participant: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateParticipation
	}
	state, err := lifecycle.Classify(event, now)
	if err != nil {
		return nil, err
	}
	if state.IsFull {
		return nil, domain.ErrCapacityExceeded
	}
	if state.IsClosingSoon {
		return nil, domain.ErrEventClosed
	}

	// The store re-checks capacity and uniqueness under a lock.
	p, err := s.participantRepo.Join(ctx, eventID, userID, now.Instant())
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("event_id", eventID).Str("user_id", userID).Msg("participant joined")
	return &input.JoinResult{
		Participant: p,
		Message:     s.points.AwardJoin(ctx, locale, userID, eventID),
	}, nil
}

// CancelParticipation removes the registration and charges the penalty for
// the time left before the stored event starts.
func (s *ParticipantService) CancelParticipation(ctx context.Context, locale, userID, eventID string, now tz.Moment) (res *input.CancelResult, err error) {
	ctx, span := startSpan(ctx, "participants.cancel", trace.WithAttributes(
		attribute.String("event_id", eventID),
		attribute.String("user_id", userID),
	))
	defer func() { endSpan(span, err) }()

	if now.IsZero() {
		return nil, domain.ErrClockUnavailable
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.participantRepo.Leave(ctx, eventID, userID); err != nil {
		return nil, err
	}
	s.log.Info().Str("event_id", eventID).Str("user_id", userID).Msg("participant cancelled")

	penalty := s.points.PenalizeCancellation(ctx, locale, userID, eventID, event.EffectiveAt(), now)
	return &input.CancelResult{
		Penalty: penalty.Points,
		Tier:    penalty.Tier,
		Message: penalty.Message,
	}, nil
}

func (s *ParticipantService) IsParticipant(ctx context.Context, userID, eventID string) (bool, error) {
	return s.participantRepo.Exists(ctx, eventID, userID)
}
