package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"eventpulse/internal/domain/entities"
	"eventpulse/internal/ports/output"
)

var _ output.LedgerRepository = (*LedgerRepository)(nil)

// LedgerRepository appends to points_ledger; rows are never updated.
type LedgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Append(ctx context.Context, entry *entities.LedgerEntry) error {
	if err := entry.Validate(ctx); err != nil {
		return err
	}
	createdAt := pgtype.Timestamptz{Time: entry.CreatedAt, Valid: !entry.CreatedAt.IsZero()}
	var created pgtype.Timestamptz
	err := r.db.QueryRow(ctx, `
		INSERT INTO points_ledger (user_id, event_id, points, reason, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
		RETURNING id, created_at`,
		entry.UserID, stringToText(entry.EventID), int32(entry.Points), entry.Reason, createdAt,
	).Scan(&entry.ID, &created)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	entry.CreatedAt = pgtypeTimestamptzToTime(created)
	return nil
}

func (r *LedgerRepository) ListByUser(ctx context.Context, userID string) ([]entities.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, event_id, points, reason, created_at
		FROM points_ledger WHERE user_id = $1
		ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	var out []entities.LedgerEntry
	for rows.Next() {
		var (
			e       entities.LedgerEntry
			eventID pgtype.Text
			points  int32
			created pgtype.Timestamptz
		)
		if err := rows.Scan(&e.ID, &e.UserID, &eventID, &points, &e.Reason, &created); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.EventID = textToString(eventID)
		e.Points = int(points)
		e.CreatedAt = pgtypeTimestamptzToTime(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return out, nil
}

func (r *LedgerRepository) SumByUser(ctx context.Context, userID string) (int, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(points), 0) FROM points_ledger WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum ledger: %w", err)
	}
	return int(total), nil
}
