package tz

import (
	"errors"
	"fmt"
	"time"
)

// ErrClockUnavailable is returned when the current instant cannot be read.
var ErrClockUnavailable = errors.New("tz: clock unavailable")

// Moment is the current time expressed as a (date, wall time) pair in
// Reference. Lifecycle rules only ever see a Moment, never the ambient clock.
type Moment struct {
	Today Date
	Time  TimeOfDay
}

// At normalizes an instant to Reference.
func At(instant time.Time) Moment {
	r := instant.In(Reference)
	return Moment{Today: DateOf(r), Time: TimeOf(r)}
}

// Instant returns the moment as a time.Time in Reference.
func (m Moment) Instant() time.Time {
	return Combine(m.Today, m.Time)
}

func (m Moment) IsZero() bool {
	return m.Today.IsZero()
}

func (m Moment) Add(d time.Duration) Moment {
	return At(m.Instant().Add(d))
}

func (m Moment) String() string {
	return m.Today.String() + " " + m.Time.String() + " " + Reference.String()
}

// Source reads the ambient instant.
type Source func() (time.Time, error)

// Normalizer converts the ambient clock to a Moment.
type Normalizer struct {
	source Source
}

func NewNormalizer(source Source) *Normalizer {
	return &Normalizer{source: source}
}

// SystemNormalizer reads time.Now.
func SystemNormalizer() *Normalizer {
	return NewNormalizer(func() (time.Time, error) { return time.Now(), nil })
}

// Fixed always reports the same instant.
func Fixed(instant time.Time) *Normalizer {
	return NewNormalizer(func() (time.Time, error) { return instant, nil })
}

// Now fails closed: a broken or zero source yields ErrClockUnavailable
// instead of a guessed time.
func (n *Normalizer) Now() (Moment, error) {
	if n == nil || n.source == nil {
		return Moment{}, ErrClockUnavailable
	}
	t, err := n.source()
	if err != nil {
		return Moment{}, fmt.Errorf("%w: %v", ErrClockUnavailable, err)
	}
	if t.IsZero() {
		return Moment{}, ErrClockUnavailable
	}
	return At(t), nil
}
