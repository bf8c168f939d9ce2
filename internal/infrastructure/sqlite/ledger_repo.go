package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"eventpulse/internal/domain/entities"
	"eventpulse/internal/ports/output"
)

var _ output.LedgerRepository = (*LedgerRepository)(nil)

type LedgerRepository struct {
	db *sql.DB
}

func (r *LedgerRepository) Append(ctx context.Context, entry *entities.LedgerEntry) error {
	if err := entry.Validate(ctx); err != nil {
		return err
	}
	createdAt := toMillis(entry.CreatedAt)
	var eventID sql.NullString
	if entry.EventID != "" {
		eventID = sql.NullString{String: entry.EventID, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO points_ledger (user_id, event_id, points, reason, created_at)
VALUES (?, ?, ?, ?, ?)`,
		entry.UserID, eventID, entry.Points, entry.Reason, createdAt,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	entry.ID = id
	entry.CreatedAt = fromMillis(createdAt)
	return nil
}

func (r *LedgerRepository) ListByUser(ctx context.Context, userID string) ([]entities.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, event_id, points, reason, created_at
FROM points_ledger WHERE user_id = ?
ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	var out []entities.LedgerEntry
	for rows.Next() {
		var (
			e         entities.LedgerEntry
			eventID   sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &eventID, &e.Points, &e.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.EventID = eventID.String
		e.CreatedAt = fromMillis(createdAt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return out, nil
}

func (r *LedgerRepository) SumByUser(ctx context.Context, userID string) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(points), 0) FROM points_ledger WHERE user_id = ?`, userID,
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum ledger: %w", err)
	}
	return total, nil
}
