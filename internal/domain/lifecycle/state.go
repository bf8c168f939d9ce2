package lifecycle

import (
	"eventpulse/internal/domain"
	"eventpulse/internal/domain/entities"
	"eventpulse/pkg/tz"
)

// Badge is a UI marker derived from State.
type Badge string

const (
	BadgeOpen        Badge = "open"
	BadgeFull        Badge = "full"
	BadgeClosingSoon Badge = "closing_soon"
	BadgeClosed      Badge = "closed"
)

// State is recomputed on every read; nothing here is persisted.
type State struct {
	IsFull        bool `json:"is_full"`
	IsClosingSoon bool `json:"is_closing_soon"`
	IsStarted     bool `json:"is_started"`
}

// Classify derives the state of e at now. Fullness and the temporal flags are
// independent of each other.
func Classify(e *entities.Event, now tz.Moment) (State, error) {
	if now.IsZero() {
		return State{}, domain.ErrClockUnavailable
	}
	instant := now.Instant()
	effective := e.EffectiveAt()
	return State{
		IsFull:        e.IsFull(),
		IsClosingSoon: !instant.Before(effective.Add(-ClosingWindow)),
		IsStarted:     !instant.Before(effective),
	}, nil
}

func (s State) CanJoin() bool {
	return !s.IsFull && !s.IsClosingSoon
}

// Badges lists the markers to display. Full and closing badges may both
// appear; closed replaces closing_soon once the event has started.
func (s State) Badges() []Badge {
	var badges []Badge
	if s.IsFull {
		badges = append(badges, BadgeFull)
	}
	switch {
	case s.IsStarted:
		badges = append(badges, BadgeClosed)
	case s.IsClosingSoon:
		badges = append(badges, BadgeClosingSoon)
	}
	if len(badges) == 0 {
		badges = append(badges, BadgeOpen)
	}
	return badges
}
