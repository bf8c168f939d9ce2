package application

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"eventpulse/internal/domain"
	"eventpulse/internal/ports/input"
	"eventpulse/pkg/tz"
)

func TestRunCleanupDeletesExpiredOnly(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()
	s.seed(t, "old", at(2026, 5, 17, 22, 0), 10)
	s.seed(t, "boundary", at(2026, 5, 18, 13, 0), 10)
	s.seed(t, "grace", at(2026, 5, 18, 13, 30), 10)
	for _, id := range []string{"old", "grace"} {
		if _, err := s.store.Participants().Join(ctx, id, "u1", at(2026, 5, 1, 0, 0).Instant()); err != nil {
			t.Fatal(err)
		}
	}
	now := at(2026, 5, 18, 14, 0)

	res, err := s.reaper.RunCleanup(ctx, now)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if res.DeletedCount != 1 || len(res.DeletedIDs) != 1 || res.DeletedIDs[0] != "old" {
		t.Fatalf("result = %+v", res)
	}
	if res.Cutoff.Time.Hour != 13 {
		t.Fatalf("cutoff = %s", res.Cutoff)
	}

	orphans, err := s.store.Participants().CountByEventIDs(ctx, res.DeletedIDs)
	if err != nil || orphans != 0 {
		t.Fatalf("orphans = %d, %v", orphans, err)
	}
	kept, err := s.store.Participants().CountByEventIDs(ctx, []string{"grace"})
	if err != nil || kept != 1 {
		t.Fatalf("kept participants = %d, %v", kept, err)
	}

	again, err := s.reaper.RunCleanup(ctx, now)
	if err != nil {
		t.Fatalf("second cleanup: %v", err)
	}
	if again.DeletedCount != 0 || len(again.DeletedIDs) != 0 {
		t.Fatalf("second result = %+v", again)
	}
}

func TestRunCleanupCrossesMidnight(t *testing.T) {
	s := newServices(t, nil)
	s.seed(t, "late", at(2026, 5, 17, 23, 10), 10)
	s.seed(t, "later", at(2026, 5, 17, 23, 40), 10)

	res, err := s.reaper.RunCleanup(context.Background(), at(2026, 5, 18, 0, 30))
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if len(res.DeletedIDs) != 1 || res.DeletedIDs[0] != "late" {
		t.Fatalf("deleted = %v, want [late]", res.DeletedIDs)
	}
}

func TestRunCleanupFailures(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()

	if _, err := s.reaper.RunCleanup(ctx, tz.Moment{}); !errors.Is(err, domain.ErrClockUnavailable) {
		t.Fatalf("err = %v, want ErrClockUnavailable", err)
	}

	broken := NewReaperService(brokenEvents{s.store.Events()}, s.store.Participants(), zerolog.Nop())
	if _, err := broken.RunCleanup(ctx, at(2026, 5, 18, 14, 0)); !errors.Is(err, domain.ErrSelection) {
		t.Fatalf("err = %v, want ErrSelection", err)
	}
}

func TestRunCleanupOverlappingRunsReportOwnDeletes(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()
	s.seed(t, "old", at(2026, 5, 17, 22, 0), 10)
	now := at(2026, 5, 18, 14, 0)

	var first *input.CleanupResult
	events := &racingEvents{EventRepository: s.store.Events()}
	events.concurrent = func() {
		res, err := s.reaper.RunCleanup(ctx, now)
		if err != nil {
			t.Errorf("concurrent cleanup: %v", err)
			return
		}
		first = res
	}
	slow := NewReaperService(events, s.store.Participants(), zerolog.Nop())

	res, err := slow.RunCleanup(ctx, now)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if first == nil || first.DeletedCount != 1 || len(first.DeletedIDs) != 1 || first.DeletedIDs[0] != "old" {
		t.Fatalf("concurrent result = %+v, want [old]", first)
	}
	if res.DeletedCount != 0 || len(res.DeletedIDs) != 0 {
		t.Fatalf("slow result = %+v, want nothing deleted", res)
	}
	if _, err := s.store.Events().FindByID(ctx, "old"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("find old: err = %v, want ErrEventNotFound", err)
	}
}

func TestRunCleanupRetriesAfterDeletionFailure(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()
	s.seed(t, "old", at(2026, 5, 17, 22, 0), 10)
	if _, err := s.store.Participants().Join(ctx, "old", "u1", at(2026, 5, 1, 0, 0).Instant()); err != nil {
		t.Fatal(err)
	}
	now := at(2026, 5, 18, 14, 0)
	reaper := NewReaperService(&flakyEventDeletes{EventRepository: s.store.Events()}, s.store.Participants(), zerolog.Nop())

	if _, err := reaper.RunCleanup(ctx, now); !errors.Is(err, domain.ErrDeletion) {
		t.Fatalf("err = %v, want ErrDeletion", err)
	}
	// Participants are gone, the event is still there.
	if n, err := s.store.Participants().CountByEventIDs(ctx, []string{"old"}); err != nil || n != 0 {
		t.Fatalf("participants after failure = %d, %v", n, err)
	}
	if _, err := s.store.Events().FindByID(ctx, "old"); err != nil {
		t.Fatalf("event after failure: %v", err)
	}

	res, err := reaper.RunCleanup(ctx, now)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if res.DeletedCount != 1 || len(res.DeletedIDs) != 1 || res.DeletedIDs[0] != "old" {
		t.Fatalf("retry result = %+v, want [old]", res)
	}
	if _, err := s.store.Events().FindByID(ctx, "old"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("find old: err = %v, want ErrEventNotFound", err)
	}
}
