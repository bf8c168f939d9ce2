package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"eventpulse/internal/domain"
	"eventpulse/internal/domain/entities"
	"eventpulse/internal/domain/points"
	"eventpulse/internal/ports/input"
	"eventpulse/internal/ports/output"
	"eventpulse/pkg/tz"
)

var _ input.PointsUseCase = (*PointsService)(nil)

// Ledger reasons are stored in the default locale so every reader sees the
// same text.
const ledgerLocale = ""

type PointsService struct {
	publisher  output.LedgerPublisher
	ledgerRepo output.LedgerRepository
	translator output.T
	log        zerolog.Logger
}

func NewPointsService(
	publisher output.LedgerPublisher,
	ledgerRepo output.LedgerRepository,
	translator output.T,
	log zerolog.Logger,
) *PointsService {
	return &PointsService{
		publisher:  publisher,
		ledgerRepo: ledgerRepo,
		translator: translator,
		log:        log,
	}
}

func (s *PointsService) AwardJoin(ctx context.Context, locale, userID, eventID string) string {
	data := map[string]any{"Points": points.JoinAward}
	s.publish(ctx, entities.LedgerEntry{
		UserID:  userID,
		EventID: eventID,
		Points:  points.JoinAward,
		Reason:  s.translator.T(ledgerLocale, "points.join.reason", nil),
	})
	return s.translator.T(locale, "points.join.message", data)
}

func (s *PointsService) PenalizeCancellation(ctx context.Context, locale, userID, eventID string, effectiveAt time.Time, now tz.Moment) input.Penalty {
	hours := points.HoursUntil(effectiveAt, now)
	tier := points.TierFor(hours)
	amount := tier.Penalty()
	data := map[string]any{"Points": amount}

	s.publish(ctx, entities.LedgerEntry{
		UserID:  userID,
		EventID: eventID,
		Points:  -amount,
		Reason:  s.translator.T(ledgerLocale, "points.cancel.reason", data),
	})
	s.log.Info().
		Str("event_id", eventID).
		Str("user_id", userID).
		Float64("hours_until", hours).
		Str("tier", tier.String()).
		Int("penalty", amount).
		Msg("cancellation penalty applied")

	return input.Penalty{
		Points:  amount,
		Tier:    tier,
		Message: s.translator.T(locale, "points.cancel."+tier.String(), data),
	}
}

func (s *PointsService) GetScore(ctx context.Context, userID string) (score *input.Score, err error) {
	ctx, span := startSpan(ctx, "points.score", trace.WithAttributes(attribute.String("user_id", userID)))
	defer func() { endSpan(span, err) }()

	total, err := s.ledgerRepo.SumByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("sum ledger: %w", err)
	}
	entries, err := s.ledgerRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return &input.Score{UserID: userID, Total: total, Entries: entries}, nil
}

// publish never fails the caller: the participation change is already
// committed when it runs.
func (s *PointsService) publish(ctx context.Context, entry entities.LedgerEntry) {
	if err := s.publisher.Publish(ctx, entry); err != nil {
		s.log.Warn().
			Err(fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)).
			Str("user_id", entry.UserID).
			Str("event_id", entry.EventID).
			Int("points", entry.Points).
			Msg("points ledger write failed")
	}
}
