package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"eventpulse/internal/domain"
	"eventpulse/internal/domain/lifecycle"
	"eventpulse/internal/ports/input"
	"eventpulse/internal/ports/output"
	"eventpulse/pkg/tz"
)

var _ input.ReaperUseCase = (*ReaperService)(nil)

// ReaperService deletes events that ended their visibility grace. Each run is
// independent; a failed run is simply retried by the next one.
type ReaperService struct {
	eventRepo       output.EventRepository
	participantRepo output.ParticipantRepository
	log             zerolog.Logger
}

func NewReaperService(
	eventRepo output.EventRepository,
	participantRepo output.ParticipantRepository,
	log zerolog.Logger,
) *ReaperService {
	return &ReaperService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		log:             log,
	}
}

func (s *ReaperService) RunCleanup(ctx context.Context, now tz.Moment) (res *input.CleanupResult, err error) {
	ctx, span := startSpan(ctx, "reaper.cleanup")
	defer func() { endSpan(span, err) }()

	if now.IsZero() {
		return nil, domain.ErrClockUnavailable
	}
	cutoff := lifecycle.ReapCutoff(now)
	log := s.log.With().Str("cutoff", cutoff.String()).Logger()

	ids, err := s.eventRepo.ListExpired(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("cleanup selection failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrSelection, err)
	}
	res = &input.CleanupResult{Cutoff: cutoff, DeletedIDs: []string{}}
	if len(ids) == 0 {
		log.Info().Msg("no expired events")
		return res, nil
	}

	// Participants first: no join record may outlive its event.
	participants, err := s.participantRepo.DeleteByEventIDs(ctx, ids)
	if err != nil {
		log.Error().Err(err).Strs("event_ids", ids).Msg("cleanup participant deletion failed")
		return nil, fmt.Errorf("%w: participants: %v", domain.ErrDeletion, err)
	}
	// A concurrent run may have removed some of ids already; report only
	// the rows this run deleted.
	deleted, err := s.eventRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		log.Error().Err(err).Strs("event_ids", ids).Msg("cleanup event deletion failed")
		return nil, fmt.Errorf("%w: events: %v", domain.ErrDeletion, err)
	}

	res.DeletedCount = int64(len(deleted))
	res.DeletedIDs = deleted
	span.SetAttributes(attribute.Int64("deleted_count", res.DeletedCount))
	log.Info().
		Int64("deleted_count", res.DeletedCount).
		Int64("participants_deleted", participants).
		Strs("event_ids", deleted).
		Msg("expired events removed")
	return res, nil
}
