package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"eventpulse/internal/domain"
	"eventpulse/internal/domain/entities"
	"eventpulse/internal/ports/output"
	"eventpulse/pkg/tz"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	db DBTX
}

func NewEventRepository(db DBTX) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	if err := event.Validate(ctx); err != nil {
		return err
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO events (id, name, description, location, category, event_date, event_time,
			max_participants, current_participants, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`,
		event.ID, event.Name, event.Description, event.Location, string(event.Category),
		dateToPgtype(event.Date), timeOfDayToPgtype(event.Time),
		int32(event.MaxParticipants), int32(event.CurrentParticipants), event.CreatorID,
	)
	if err := row.Scan(&event.CreatedAt); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) List(ctx context.Context, filter output.EventFilter) ([]entities.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	var args []any
	if filter.City != "" {
		query += ` WHERE location ILIKE $1 ESCAPE '\'`
		args = append(args, likePattern(filter.City))
	}
	query += ` ORDER BY event_date, event_time, created_at, id`
	return r.queryEvents(ctx, "list events", query, args...)
}

func (r *EventRepository) ListByCreator(ctx context.Context, creatorID string) ([]entities.Event, error) {
	return r.queryEvents(ctx, "get events by creator id", `
		SELECT `+eventColumns+` FROM events
		WHERE creator_id = $1
		ORDER BY event_date, event_time, created_at, id`, creatorID)
}

func (r *EventRepository) ListExpired(ctx context.Context, cutoff tz.Moment) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM events
		WHERE event_date < $1 OR (event_date = $1 AND event_time < $2)
		ORDER BY event_date, event_time, id`,
		dateToPgtype(cutoff.Today), timeOfDayToPgtype(cutoff.Time),
	)
	if err != nil {
		return nil, fmt.Errorf("list expired events: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan expired events: %w", err)
	}
	return ids, nil
}

func (r *EventRepository) DeleteByIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	rows, err := r.db.Query(ctx, `DELETE FROM events WHERE id = ANY($1) RETURNING id`, ids)
	if err != nil {
		return nil, fmt.Errorf("delete events: %w", err)
	}
	deleted, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("delete events: %w", err)
	}
	return deleted, nil
}

func (r *EventRepository) queryEvents(ctx context.Context, op, query string, args ...any) ([]entities.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []entities.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
