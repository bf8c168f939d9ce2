package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventpulse/internal/domain"
	"eventpulse/internal/domain/entities"
	"eventpulse/internal/ports/output"
	"eventpulse/pkg/tz"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	db *sql.DB
}

const eventColumns = `id, name, description, location, category, event_date, event_time,
	max_participants, current_participants, creator_id, created_at`

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	if err := event.Validate(ctx); err != nil {
		return err
	}
	createdAt := toMillis(event.CreatedAt)
	_, err := r.db.ExecContext(ctx, `
INSERT INTO events (`+eventColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Name, event.Description, event.Location, string(event.Category),
		event.Date.String(), event.Time.String(),
		event.MaxParticipants, event.CurrentParticipants, event.CreatorID, createdAt,
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.CreatedAt = fromMillis(createdAt)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
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
	if city := strings.TrimSpace(filter.City); city != "" {
		query += ` WHERE location LIKE ? ESCAPE '\'`
		args = append(args, likePattern(city))
	}
	query += ` ORDER BY event_date, event_time, created_at, id`
	return r.queryEvents(ctx, "list events", query, args...)
}

func (r *EventRepository) ListByCreator(ctx context.Context, creatorID string) ([]entities.Event, error) {
	return r.queryEvents(ctx, "get events by creator id", `
SELECT `+eventColumns+` FROM events
WHERE creator_id = ?
ORDER BY event_date, event_time, created_at, id`, creatorID)
}

// ListExpired compares the ISO text columns lexically, which matches
// chronological order for zero-padded values.
func (r *EventRepository) ListExpired(ctx context.Context, cutoff tz.Moment) ([]string, error) {
	date, clock := cutoff.Today.String(), cutoff.Time.String()
	rows, err := r.db.QueryContext(ctx, `
SELECT id FROM events
WHERE event_date < ? OR (event_date = ? AND event_time < ?)
ORDER BY event_date, event_time, id`, date, date, clock)
	if err != nil {
		return nil, fmt.Errorf("list expired events: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan expired events: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expired events: %w", err)
	}
	return ids, nil
}

func (r *EventRepository) DeleteByIDs(ctx context.Context, ids []string) ([]string, error) {
	deleted := []string{}
	if len(ids) == 0 {
		return deleted, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`DELETE FROM events WHERE id IN (`+placeholders(len(ids))+`) RETURNING id`, stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("delete events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("delete events: scan: %w", err)
		}
		deleted = append(deleted, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("delete events: %w", err)
	}
	return deleted, nil
}

func (r *EventRepository) queryEvents(ctx context.Context, op, query string, args ...any) ([]entities.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (entities.Event, error) {
	var (
		e               entities.Event
		category        string
		date, clock     string
		max, current    int
		createdAtMillis int64
	)
	if err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Location, &category, &date, &clock,
		&max, &current, &e.CreatorID, &createdAtMillis,
	); err != nil {
		return entities.Event{}, err
	}
	d, err := tz.ParseDate(date)
	if err != nil {
		return entities.Event{}, fmt.Errorf("event %s date: %w", e.ID, err)
	}
	t, err := tz.ParseTimeOfDay(clock)
	if err != nil {
		return entities.Event{}, fmt.Errorf("event %s time: %w", e.ID, err)
	}
	e.Category = entities.Category(category)
	e.Date = d
	e.Time = t
	e.MaxParticipants = max
	e.CurrentParticipants = current
	e.CreatedAt = fromMillis(createdAtMillis)
	return e, nil
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
