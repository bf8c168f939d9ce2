package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventpulse/internal/domain"
	"eventpulse/internal/domain/entities"
	"eventpulse/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

type ParticipantRepository struct {
	db *sql.DB
}

func (r *ParticipantRepository) Join(ctx context.Context, eventID, userID string, joinedAt time.Time) (*entities.Participant, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin join: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var current, max int
	err = tx.QueryRowContext(ctx,
		`SELECT current_participants, max_participants FROM events WHERE id = ?`, eventID,
	).Scan(&current, &max)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read event: %w", err)
	}

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM event_participants WHERE event_id = ? AND user_id = ?)`,
		eventID, userID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check participant: %w", err)
	}
	if exists == 1 {
		return nil, domain.ErrDuplicateParticipation
	}
	if current >= max {
		return nil, domain.ErrCapacityExceeded
	}

	joined := toMillis(joinedAt)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO event_participants (event_id, user_id, joined_at) VALUES (?, ?, ?)`,
		eventID, userID, joined,
	)
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicateParticipation
	}
	if err != nil {
		return nil, fmt.Errorf("create participant: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create participant: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE events SET current_participants = current_participants + 1 WHERE id = ?`, eventID,
	); err != nil {
		return nil, fmt.Errorf("increment participants: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit join: %w", err)
	}
	return &entities.Participant{ID: id, EventID: eventID, UserID: userID, JoinedAt: fromMillis(joined)}, nil
}

func (r *ParticipantRepository) Leave(ctx context.Context, eventID, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin leave: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM event_participants WHERE event_id = ? AND user_id = ?`, eventID, userID)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if n == 0 {
		return domain.ErrParticipantNotFound
	}
	if _, err := tx.ExecContext(ctx, `
UPDATE events SET current_participants = current_participants - 1
WHERE id = ? AND current_participants > 0`, eventID); err != nil {
		return fmt.Errorf("decrement participants: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit leave: %w", err)
	}
	return nil
}

func (r *ParticipantRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	var exists int
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM event_participants WHERE event_id = ? AND user_id = ?)`,
		eventID, userID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check participant: %w", err)
	}
	return exists == 1, nil
}

func (r *ParticipantRepository) DeleteByEventIDs(ctx context.Context, eventIDs []string) (int64, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM event_participants WHERE event_id IN (`+placeholders(len(eventIDs))+`)`,
		stringArgs(eventIDs)...)
	if err != nil {
		return 0, fmt.Errorf("delete participants: %w", err)
	}
	return res.RowsAffected()
}

func (r *ParticipantRepository) CountByEventIDs(ctx context.Context, eventIDs []string) (int64, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM event_participants WHERE event_id IN (`+placeholders(len(eventIDs))+`)`,
		stringArgs(eventIDs)...,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return count, nil
}
