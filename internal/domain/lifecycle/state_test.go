package lifecycle

import (
	"reflect"
	"testing"
)

func TestClassifyTemporal(t *testing.T) {
	e := event("e1", today, 14, 0)
	tests := []struct {
		name    string
		hour    int
		minute  int
		closing bool
		started bool
	}{
		{name: "morning", hour: 9, minute: 0},
		{name: "just before window", hour: 12, minute: 59},
		{name: "window opens", hour: 13, minute: 0, closing: true},
		{name: "start", hour: 14, minute: 0, closing: true, started: true},
		{name: "in progress", hour: 14, minute: 59, closing: true, started: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Classify(&e, at(today, tt.hour, tt.minute, 0))
			if err != nil {
				t.Fatalf("classify: %v", err)
			}
			if s.IsClosingSoon != tt.closing {
				t.Fatalf("closing = %v, want %v", s.IsClosingSoon, tt.closing)
			}
			if s.IsStarted != tt.started {
				t.Fatalf("started = %v, want %v", s.IsStarted, tt.started)
			}
			if s.IsFull {
				t.Fatal("empty event reported full")
			}
		})
	}
}

func TestClassifyFullIndependentOfTime(t *testing.T) {
	e := event("e1", today, 14, 0)
	e.CurrentParticipants = e.MaxParticipants

	early, err := Classify(&e, at(today.AddDays(-3), 10, 0, 0))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !early.IsFull || early.IsClosingSoon {
		t.Fatalf("state = %+v, want full and not closing", early)
	}
	if early.CanJoin() {
		t.Fatal("full event must not be joinable")
	}
	if got, want := early.Badges(), []Badge{BadgeFull}; !reflect.DeepEqual(got, want) {
		t.Fatalf("badges = %v, want %v", got, want)
	}

	late, err := Classify(&e, at(today, 13, 30, 0))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got, want := late.Badges(), []Badge{BadgeFull, BadgeClosingSoon}; !reflect.DeepEqual(got, want) {
		t.Fatalf("badges = %v, want %v", got, want)
	}
}

// Event at 14:00, now 14:59: still listed, no longer joinable.
func TestVisibleButClosed(t *testing.T) {
	e := event("e1", today, 14, 0)
	now := at(today, 14, 59, 0)

	visible, err := IsVisible(&e, now)
	if err != nil {
		t.Fatalf("is visible: %v", err)
	}
	s, err := Classify(&e, now)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !visible || !s.IsClosingSoon {
		t.Fatalf("visible=%v closing=%v, want both true", visible, s.IsClosingSoon)
	}
	if s.CanJoin() {
		t.Fatal("started event must not be joinable")
	}
	if got, want := s.Badges(), []Badge{BadgeClosed}; !reflect.DeepEqual(got, want) {
		t.Fatalf("badges = %v, want %v", got, want)
	}
}

func TestOpenBadge(t *testing.T) {
	e := event("e1", today, 14, 0)
	s, err := Classify(&e, at(today, 8, 0, 0))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !s.CanJoin() {
		t.Fatal("open event should be joinable")
	}
	if got, want := s.Badges(), []Badge{BadgeOpen}; !reflect.DeepEqual(got, want) {
		t.Fatalf("badges = %v, want %v", got, want)
	}
}
