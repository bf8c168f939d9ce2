// Package points holds the participation scoring rules.
package points

import (
	"time"

	"eventpulse/pkg/tz"
)

// JoinAward is credited once per successful join.
const JoinAward = 10

// Tier identifies which cancellation bracket applied.
type Tier int

const (
	// TierLate covers cancellations 5 hours or less before the start,
	// including cancellations after the event has already started.
	TierLate Tier = iota + 1
	// TierSameDay covers more than 5 and up to 24 hours before the start.
	TierSameDay
	// TierEarly covers more than 24 hours before the start.
	TierEarly
)

const (
	lateThresholdHours    = 5
	sameDayThresholdHours = 24
)

var penalties = map[Tier]int{
	TierLate:    40,
	TierSameDay: 20,
	TierEarly:   10,
}

func (t Tier) String() string {
	switch t {
	case TierLate:
		return "late"
	case TierSameDay:
		return "same_day"
	case TierEarly:
		return "early"
	default:
		return "unknown"
	}
}

// Penalty returns the points forfeited by this tier.
func (t Tier) Penalty() int {
	return penalties[t]
}

// TierFor maps hours-until-start to a bracket. Boundaries belong to the
// stricter tier: exactly 5h is late, exactly 24h is same-day.
func TierFor(hoursUntil float64) Tier {
	switch {
	case hoursUntil <= lateThresholdHours:
		return TierLate
	case hoursUntil <= sameDayThresholdHours:
		return TierSameDay
	default:
		return TierEarly
	}
}

// Penalty is the positive number of points forfeited when cancelling
// hoursUntil hours before the event.
func Penalty(hoursUntil float64) int {
	return TierFor(hoursUntil).Penalty()
}

// HoursUntil measures the signed gap between now and effective in hours.
func HoursUntil(effective time.Time, now tz.Moment) float64 {
	return effective.Sub(now.Instant()).Hours()
}
