package database

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"eventpulse/internal/domain/entities"
	"eventpulse/pkg/tz"
)

const uniqueViolation = "23505"

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func dateToPgtype(d tz.Date) pgtype.Date {
	return pgtype.Date{Time: time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC), Valid: true}
}

func pgtypeDateToDate(d pgtype.Date) tz.Date {
	if !d.Valid {
		return tz.Date{}
	}
	return tz.DateOf(d.Time)
}

func timeOfDayToPgtype(t tz.TimeOfDay) pgtype.Time {
	seconds := int64(t.Hour*3600 + t.Minute*60 + t.Second)
	return pgtype.Time{Microseconds: seconds * int64(time.Second/time.Microsecond), Valid: true}
}

func pgtypeTimeToTimeOfDay(t pgtype.Time) tz.TimeOfDay {
	if !t.Valid {
		return tz.TimeOfDay{}
	}
	seconds := int(t.Microseconds / int64(time.Second/time.Microsecond))
	return tz.TimeOfDay{Hour: seconds / 3600, Minute: seconds % 3600 / 60, Second: seconds % 60}
}

func textToString(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

func stringToText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

type eventRow struct {
	ID                  string
	Name                string
	Description         string
	Location            string
	Category            string
	EventDate           pgtype.Date
	EventTime           pgtype.Time
	MaxParticipants     int32
	CurrentParticipants int32
	CreatorID           string
	CreatedAt           pgtype.Timestamptz
}

const eventColumns = `id, name, description, location, category, event_date, event_time,
	max_participants, current_participants, creator_id, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (entities.Event, error) {
	var r eventRow
	err := row.Scan(
		&r.ID, &r.Name, &r.Description, &r.Location, &r.Category, &r.EventDate, &r.EventTime,
		&r.MaxParticipants, &r.CurrentParticipants, &r.CreatorID, &r.CreatedAt,
	)
	if err != nil {
		return entities.Event{}, err
	}
	return eventToDomain(r), nil
}

func eventToDomain(e eventRow) entities.Event {
	return entities.Event{
		ID:                  e.ID,
		Name:                e.Name,
		Description:         e.Description,
		Location:            e.Location,
		Category:            entities.Category(e.Category),
		Date:                pgtypeDateToDate(e.EventDate),
		Time:                pgtypeTimeToTimeOfDay(e.EventTime),
		MaxParticipants:     int(e.MaxParticipants),
		CurrentParticipants: int(e.CurrentParticipants),
		CreatorID:           e.CreatorID,
		CreatedAt:           pgtypeTimestamptzToTime(e.CreatedAt),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// likePattern escapes LIKE wildcards so city filters match literally.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}
