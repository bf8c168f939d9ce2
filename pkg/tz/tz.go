package tz

import "time"

// Reference is the fixed UTC-3 offset used for every event lifecycle
// comparison. It has no DST, so wall times never shift.
var Reference = time.FixedZone("UTC-3", -3*60*60)

// Combine returns the effective timestamp of a calendar date and a wall time
// interpreted in Reference.
func Combine(d Date, t TimeOfDay) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, Reference)
}
