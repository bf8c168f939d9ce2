package discord

import (
	"fmt"
	"strings"
	"time"

	"eventpulse/pkg/tz"
)

// ParseEventDateTime parses a date (DD/MM/AAAA or AAAA-MM-DD) and a time
// (HH:MM) typed by a user. Both are wall values in tz.Reference.
func ParseEventDateTime(dateStr, timeStr string) (tz.Date, tz.TimeOfDay, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	if dateStr == "" || timeStr == "" {
		return tz.Date{}, tz.TimeOfDay{}, fmt.Errorf("date and time are required (DD/MM/AAAA and HH:MM)")
	}

	var date tz.Date
	if t, err := time.Parse("02/01/2006", dateStr); err == nil {
		date = tz.DateOf(t)
	} else if d, err := tz.ParseDate(dateStr); err == nil {
		date = d
	} else {
		return tz.Date{}, tz.TimeOfDay{}, fmt.Errorf("invalid date %q (want DD/MM/AAAA, e.g. 15/02/2026)", dateStr)
	}

	clock, err := tz.ParseTimeOfDay(timeStr)
	if err != nil {
		return tz.Date{}, tz.TimeOfDay{}, fmt.Errorf("invalid time %q (want HH:MM, e.g. 14:00)", timeStr)
	}
	return date, clock, nil
}

func FormatEventDateTime(d tz.Date, t tz.TimeOfDay) string {
	if d.IsZero() {
		return ""
	}
	return tz.Combine(d, t).Format("02/01/2006 15:04")
}
