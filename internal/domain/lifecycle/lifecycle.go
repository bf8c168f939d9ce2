// Package lifecycle derives the time-dependent state of events. Every
// function is pure: the caller passes the normalized now.
package lifecycle

import (
	"sort"
	"time"

	"eventpulse/internal/domain"
	"eventpulse/internal/domain/entities"
	"eventpulse/pkg/tz"
)

const (
	// VisibilityGrace keeps an event listed after it starts.
	VisibilityGrace = time.Hour
	// ClosingWindow stops joins before an event starts.
	ClosingWindow = time.Hour
)

// Visible returns the events still listed at now, ordered by effective
// timestamp ascending. Events sharing a timestamp keep their input order.
// An event is listed while now < effective + VisibilityGrace.
func Visible(events []entities.Event, now tz.Moment) ([]entities.Event, error) {
	if now.IsZero() {
		return nil, domain.ErrClockUnavailable
	}
	instant := now.Instant()
	out := make([]entities.Event, 0, len(events))
	for _, e := range events {
		if isVisible(&e, instant) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EffectiveAt().Before(out[j].EffectiveAt())
	})
	return out, nil
}

// IsVisible reports whether a single event is listed at now.
func IsVisible(e *entities.Event, now tz.Moment) (bool, error) {
	if now.IsZero() {
		return false, domain.ErrClockUnavailable
	}
	return isVisible(e, now.Instant()), nil
}

func isVisible(e *entities.Event, now time.Time) bool {
	return now.Before(e.EffectiveAt().Add(VisibilityGrace))
}

// ReapCutoff is the boundary below which the reaper deletes events. It uses
// the same grace as Visible, so nothing listed is ever reaped.
func ReapCutoff(now tz.Moment) tz.Moment {
	return now.Add(-VisibilityGrace)
}
