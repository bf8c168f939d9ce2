package tz

import (
	"errors"
	"testing"
	"time"
)

func TestAtSubtractsThreeHoursFromUTC(t *testing.T) {
	instant := time.Date(2026, 3, 10, 1, 30, 15, 0, time.UTC)

	m := At(instant)

	if got, want := m.Today, (Date{2026, time.March, 9}); got != want {
		t.Fatalf("today = %v, want %v", got, want)
	}
	if got, want := m.Time, (TimeOfDay{22, 30, 15}); got != want {
		t.Fatalf("time = %v, want %v", got, want)
	}
	if !m.Instant().Equal(instant) {
		t.Fatalf("instant = %v, want %v", m.Instant(), instant)
	}
}

func TestAtIgnoresCallerLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	instant := time.Date(2026, 3, 10, 9, 0, 0, 0, tokyo)

	if got, want := At(instant), At(instant.UTC()); got != want {
		t.Fatalf("moment = %v, want %v", got, want)
	}
}

func TestCombine(t *testing.T) {
	got := Combine(Date{2026, time.July, 1}, TimeOfDay{Hour: 14})
	want := time.Date(2026, 7, 1, 17, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("combine = %v, want %v", got, want)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "14:00", want: TimeOfDay{Hour: 14}},
		{in: " 09:05:30 ", want: TimeOfDay{9, 5, 30}},
		{in: "25:00", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseTimeOfDay(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseTimeOfDay(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if d.String() != "2026-02-28" {
		t.Fatalf("date = %s, want 2026-02-28", d)
	}
	if got := d.AddDays(1); got != (Date{2026, time.March, 1}) {
		t.Fatalf("add days = %v, want 2026-03-01", got)
	}
	if _, err := ParseDate("28/02/2026"); err == nil {
		t.Fatal("expected error for non ISO date")
	}
}

func TestDateAndTimeCompare(t *testing.T) {
	a := Date{2026, time.January, 31}
	b := Date{2026, time.February, 1}
	if !a.Before(b) || b.Before(a) || a.Compare(a) != 0 {
		t.Fatalf("date ordering broken for %v / %v", a, b)
	}
	x := TimeOfDay{Hour: 13, Minute: 59, Second: 59}
	y := TimeOfDay{Hour: 14}
	if !x.Before(y) || y.Before(x) {
		t.Fatalf("time ordering broken for %v / %v", x, y)
	}
}

func TestNormalizerFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		n    *Normalizer
	}{
		{name: "nil", n: nil},
		{name: "source error", n: NewNormalizer(func() (time.Time, error) { return time.Time{}, errors.New("ntp down") })},
		{name: "zero instant", n: Fixed(time.Time{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.n.Now()
			if !errors.Is(err, ErrClockUnavailable) {
				t.Fatalf("err = %v, want ErrClockUnavailable", err)
			}
			if !m.IsZero() {
				t.Fatalf("moment = %v, want zero", m)
			}
		})
	}
}

func TestFixedNormalizer(t *testing.T) {
	instant := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m, err := Fixed(instant).Now()
	if err != nil {
		t.Fatalf("now: %v", err)
	}
	if m.Time != (TimeOfDay{Hour: 9}) {
		t.Fatalf("time = %v, want 09:00:00", m.Time)
	}
	if got := m.Add(-time.Hour).Time; got != (TimeOfDay{Hour: 8}) {
		t.Fatalf("add = %v, want 08:00:00", got)
	}
}
