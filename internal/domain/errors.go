package domain

import (
	"errors"

	"eventpulse/pkg/tz"
)

// Domain errors.
var (
	ErrEventNotFound          = errors.New("event not found")
	ErrInvalidEvent           = errors.New("invalid event")
	ErrDateTimeInPast         = errors.New("event date and time must be in the future")
	ErrNotOrganizer           = errors.New("only the organizer can perform this action")
	ErrParticipantNotFound    = errors.New("participant not found")
	ErrDuplicateParticipation = errors.New("user already joined this event")
	ErrCapacityExceeded       = errors.New("event is full")
	ErrEventClosed            = errors.New("event no longer accepts participants")
	ErrInvalidLedgerEntry     = errors.New("invalid ledger entry")
	ErrLedgerWrite            = errors.New("points ledger write failed")
	ErrSelection              = errors.New("cleanup selection failed")
	ErrDeletion               = errors.New("cleanup deletion failed")
	ErrClockUnavailable       = tz.ErrClockUnavailable
)

var codes = []struct {
	err  error
	code string
}{
	{ErrEventNotFound, "event_not_found"},
	{ErrInvalidEvent, "invalid_event"},
	{ErrDateTimeInPast, "datetime_in_past"},
	{ErrNotOrganizer, "not_organizer"},
	{ErrParticipantNotFound, "participant_not_found"},
	{ErrDuplicateParticipation, "duplicate_participation"},
	{ErrCapacityExceeded, "capacity_exceeded"},
	{ErrEventClosed, "event_closed"},
	{ErrInvalidLedgerEntry, "invalid_ledger_entry"},
	{ErrLedgerWrite, "ledger_write_failure"},
	{ErrSelection, "selection_failure"},
	{ErrDeletion, "deletion_failure"},
	{ErrClockUnavailable, "clock_unavailable"},
}

// Code returns the stable code of the first domain error found in err's
// chain, or "" when err carries none.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
