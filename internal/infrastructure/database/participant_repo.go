package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"eventpulse/internal/domain"
	"eventpulse/internal/domain/entities"
	"eventpulse/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

// ParticipantRepository implements output.ParticipantRepository using pgx.
type ParticipantRepository struct {
	db DBTX
}

// NewParticipantRepository creates a ParticipantRepository.
func NewParticipantRepository(db DBTX) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Join locks the event row so the capacity check and the counter increment
// see the same value. The unique constraint backs up the duplicate check.
func (r *ParticipantRepository) Join(ctx context.Context, eventID, userID string, joinedAt time.Time) (*entities.Participant, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin join: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current, max int32
	err = tx.QueryRow(ctx, `
		SELECT current_participants, max_participants
		FROM events WHERE id = $1
		FOR UPDATE`, eventID).Scan(&current, &max)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock event: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM event_participants WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check participant: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateParticipation
	}
	if current >= max {
		return nil, domain.ErrCapacityExceeded
	}

	p := &entities.Participant{EventID: eventID, UserID: userID}
	var joined pgtype.Timestamptz
	err = tx.QueryRow(ctx, `
		INSERT INTO event_participants (event_id, user_id, joined_at)
		VALUES ($1, $2, $3)
		RETURNING id, joined_at`,
		eventID, userID, pgtype.Timestamptz{Time: joinedAt, Valid: true},
	).Scan(&p.ID, &joined)
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicateParticipation
	}
	if err != nil {
		return nil, fmt.Errorf("create participant: %w", err)
	}
	p.JoinedAt = pgtypeTimestamptzToTime(joined)

	if _, err := tx.Exec(ctx, `
		UPDATE events SET current_participants = current_participants + 1 WHERE id = $1`, eventID); err != nil {
		return nil, fmt.Errorf("increment participants: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit join: %w", err)
	}
	return p, nil
}

func (r *ParticipantRepository) Leave(ctx context.Context, eventID, userID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin leave: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}
	if _, err := tx.Exec(ctx, `
		UPDATE events SET current_participants = current_participants - 1
		WHERE id = $1 AND current_participants > 0`, eventID); err != nil {
		return fmt.Errorf("decrement participants: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit leave: %w", err)
	}
	return nil
}

func (r *ParticipantRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM event_participants WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check participant: %w", err)
	}
	return exists, nil
}

func (r *ParticipantRepository) DeleteByEventIDs(ctx context.Context, eventIDs []string) (int64, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM event_participants WHERE event_id = ANY($1)`, eventIDs)
	if err != nil {
		return 0, fmt.Errorf("delete participants: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ParticipantRepository) CountByEventIDs(ctx context.Context, eventIDs []string) (int64, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM event_participants WHERE event_id = ANY($1)`, eventIDs).Scan(&count); err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return count, nil
}
