package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"eventpulse/internal/domain"
	"eventpulse/internal/domain/entities"
	"eventpulse/internal/ports/output"
	"eventpulse/pkg/tz"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eventpulse.db")
	store, err := Open(context.Background(), path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func seedEvent(t *testing.T, store *Store, id, date, clock string, capacity int) entities.Event {
	t.Helper()
	d, err := tz.ParseDate(date)
	if err != nil {
		t.Fatal(err)
	}
	c, err := tz.ParseTimeOfDay(clock)
	if err != nil {
		t.Fatal(err)
	}
	e := entities.Event{
		ID:              id,
		Name:            "Corrida " + id,
		Location:        "Parque Barigui, Curitiba",
		Category:        entities.CategorySports,
		Date:            d,
		Time:            c,
		MaxParticipants: capacity,
		CreatorID:       "organizer",
	}
	if err := store.Events().Create(context.Background(), &e); err != nil {
		t.Fatalf("create event %s: %v", id, err)
	}
	return e
}

func TestOpenIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventpulse.db")
	for i := 0; i < 2; i++ {
		store, err := Open(context.Background(), path, zerolog.Nop())
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("close #%d: %v", i+1, err)
		}
	}
}

func TestEventRoundTripAndOrdering(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedEvent(t, store, "b", "2026-03-10", "18:30", 5)
	seedEvent(t, store, "a", "2026-03-10", "09:00", 5)
	seedEvent(t, store, "c", "2026-03-09", "23:59", 5)

	got, err := store.Events().FindByID(ctx, "b")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Date.String() != "2026-03-10" || got.Time.Short() != "18:30" {
		t.Fatalf("round trip = %s %s", got.Date, got.Time)
	}

	list, err := store.Events().List(ctx, output.EventFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	if want := []string{"c", "a", "b"}; len(ids) != 3 || ids[0] != want[0] || ids[1] != want[1] || ids[2] != want[2] {
		t.Fatalf("order = %v, want %v", ids, want)
	}

	if _, err := store.Events().FindByID(ctx, "missing"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
}

func TestListFiltersByCity(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedEvent(t, store, "a", "2026-03-10", "09:00", 5)

	list, err := store.Events().List(ctx, output.EventFilter{City: "curitiba"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	list, err = store.Events().List(ctx, output.EventFilter{City: "100%"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("wildcard matched %d events", len(list))
	}
}

func TestJoinEnforcesUniquenessAndCapacity(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedEvent(t, store, "ev", "2026-03-10", "09:00", 2)
	participants := store.Participants()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p, err := participants.Join(ctx, "ev", "u1", now)
	if err != nil {
		t.Fatalf("join u1: %v", err)
	}
	if p.ID == 0 || !p.JoinedAt.Equal(now) {
		t.Fatalf("participant = %+v", p)
	}
	if _, err := participants.Join(ctx, "ev", "u1", now); !errors.Is(err, domain.ErrDuplicateParticipation) {
		t.Fatalf("second join err = %v, want ErrDuplicateParticipation", err)
	}
	if _, err := participants.Join(ctx, "ev", "u2", now); err != nil {
		t.Fatalf("join u2: %v", err)
	}
	if _, err := participants.Join(ctx, "ev", "u3", now); !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("third join err = %v, want ErrCapacityExceeded", err)
	}
	// A duplicate on a full event still reports the duplicate.
	if _, err := participants.Join(ctx, "ev", "u2", now); !errors.Is(err, domain.ErrDuplicateParticipation) {
		t.Fatalf("duplicate on full err = %v, want ErrDuplicateParticipation", err)
	}
	if _, err := participants.Join(ctx, "nope", "u1", now); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("missing event err = %v, want ErrEventNotFound", err)
	}

	e, err := store.Events().FindByID(ctx, "ev")
	if err != nil {
		t.Fatal(err)
	}
	if e.CurrentParticipants != 2 {
		t.Fatalf("current = %d, want 2", e.CurrentParticipants)
	}
}

func TestLeave(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedEvent(t, store, "ev", "2026-03-10", "09:00", 2)
	participants := store.Participants()

	if _, err := participants.Join(ctx, "ev", "u1", time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := participants.Leave(ctx, "ev", "u1"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if err := participants.Leave(ctx, "ev", "u1"); !errors.Is(err, domain.ErrParticipantNotFound) {
		t.Fatalf("second leave err = %v, want ErrParticipantNotFound", err)
	}
	ok, err := participants.Exists(ctx, "ev", "u1")
	if err != nil || ok {
		t.Fatalf("exists = %v, %v", ok, err)
	}
	e, err := store.Events().FindByID(ctx, "ev")
	if err != nil {
		t.Fatal(err)
	}
	if e.CurrentParticipants != 0 {
		t.Fatalf("current = %d, want 0", e.CurrentParticipants)
	}
}

func TestListExpiredBoundary(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedEvent(t, store, "yesterday", "2026-03-09", "23:00", 5)
	seedEvent(t, store, "before", "2026-03-10", "12:59", 5)
	seedEvent(t, store, "at", "2026-03-10", "13:00", 5)
	seedEvent(t, store, "after", "2026-03-10", "13:01", 5)
	seedEvent(t, store, "tomorrow", "2026-03-11", "00:00", 5)

	cutoff := tz.Moment{Today: tz.Date{Year: 2026, Month: time.March, Day: 10}, Time: tz.TimeOfDay{Hour: 13}}
	ids, err := store.Events().ListExpired(ctx, cutoff)
	if err != nil {
		t.Fatalf("list expired: %v", err)
	}
	if len(ids) != 2 || ids[0] != "yesterday" || ids[1] != "before" {
		t.Fatalf("expired = %v, want [yesterday before]", ids)
	}
}

func TestDeleteParticipantsThenEvents(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedEvent(t, store, "ev", "2026-03-10", "09:00", 5)
	if _, err := store.Participants().Join(ctx, "ev", "u1", time.Now()); err != nil {
		t.Fatal(err)
	}

	ids := []string{"ev", "ghost"}
	n, err := store.Participants().DeleteByEventIDs(ctx, ids)
	if err != nil || n != 1 {
		t.Fatalf("delete participants = %d, %v", n, err)
	}
	deleted, err := store.Events().DeleteByIDs(ctx, ids)
	if err != nil || len(deleted) != 1 || deleted[0] != "ev" {
		t.Fatalf("delete events = %v, %v, want [ev]", deleted, err)
	}
	deleted, err = store.Events().DeleteByIDs(ctx, ids)
	if err != nil || len(deleted) != 0 {
		t.Fatalf("repeat delete = %v, %v, want []", deleted, err)
	}
	count, err := store.Participants().CountByEventIDs(ctx, ids)
	if err != nil || count != 0 {
		t.Fatalf("orphans = %d, %v", count, err)
	}
}

func TestLedgerAppendAndSum(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	ledger := store.Ledger()

	entries := []entities.LedgerEntry{
		{UserID: "u1", EventID: "ev", Points: 10, Reason: "event participation"},
		{UserID: "u1", EventID: "ev", Points: -40, Reason: "cancellation"},
		{UserID: "u2", Points: 10, Reason: "event participation"},
	}
	for i := range entries {
		if err := ledger.Append(ctx, &entries[i]); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if entries[i].ID == 0 {
			t.Fatalf("entry %d has no id", i)
		}
	}
	if err := ledger.Append(ctx, &entities.LedgerEntry{UserID: "u1", Reason: "zero"}); !errors.Is(err, domain.ErrInvalidLedgerEntry) {
		t.Fatalf("zero points err = %v, want ErrInvalidLedgerEntry", err)
	}

	total, err := ledger.SumByUser(ctx, "u1")
	if err != nil || total != -30 {
		t.Fatalf("sum = %d, %v; want -30", total, err)
	}
	list, err := ledger.ListByUser(ctx, "u2")
	if err != nil || len(list) != 1 || list[0].EventID != "" {
		t.Fatalf("list u2 = %+v, %v", list, err)
	}
	total, err = ledger.SumByUser(ctx, "nobody")
	if err != nil || total != 0 {
		t.Fatalf("empty sum = %d, %v", total, err)
	}
}
