package points

import (
	"testing"
	"time"

	"eventpulse/pkg/tz"
)

func TestPenaltySchedule(t *testing.T) {
	tests := []struct {
		hours float64
		want  int
		tier  Tier
	}{
		{hours: -2, want: 40, tier: TierLate},
		{hours: 0, want: 40, tier: TierLate},
		{hours: 4, want: 40, tier: TierLate},
		{hours: 5.0, want: 40, tier: TierLate},
		{hours: 5.0001, want: 20, tier: TierSameDay},
		{hours: 10, want: 20, tier: TierSameDay},
		{hours: 24.0, want: 20, tier: TierSameDay},
		{hours: 24.01, want: 10, tier: TierEarly},
		{hours: 30, want: 10, tier: TierEarly},
		{hours: 24 * 30, want: 10, tier: TierEarly},
	}
	for _, tt := range tests {
		if got := Penalty(tt.hours); got != tt.want {
			t.Fatalf("Penalty(%v) = %d, want %d", tt.hours, got, tt.want)
		}
		if got := TierFor(tt.hours); got != tt.tier {
			t.Fatalf("TierFor(%v) = %v, want %v", tt.hours, got, tt.tier)
		}
	}
}

func TestPenaltyIsMonotonic(t *testing.T) {
	prev := Penalty(-10)
	for h := -10.0; h <= 48; h += 0.25 {
		p := Penalty(h)
		if p > prev {
			t.Fatalf("penalty increased from %d to %d at h=%v", prev, p, h)
		}
		prev = p
	}
}

func TestHoursUntil(t *testing.T) {
	now := tz.At(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))
	effective := tz.Combine(tz.Date{Year: 2026, Month: time.October, Day: 16}, tz.TimeOfDay{Hour: 14})

	if got := HoursUntil(effective, now); got != 5 {
		t.Fatalf("hours until = %v, want 5", got)
	}
	if got := Penalty(HoursUntil(effective, now)); got != 40 {
		t.Fatalf("penalty at 5h = %d, want 40", got)
	}
}

func TestTierString(t *testing.T) {
	if TierSameDay.String() != "same_day" || Tier(0).String() != "unknown" {
		t.Fatal("unexpected tier names")
	}
}
