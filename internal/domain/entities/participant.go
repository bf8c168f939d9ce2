package entities

import "time"

// Participant is the join record of a user on an event. At most one exists
// per (EventID, UserID).
type Participant struct {
	ID       int64
	EventID  string
	UserID   string
	JoinedAt time.Time
}
