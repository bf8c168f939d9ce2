package application

import (
	"context"
	"errors"

	"eventpulse/internal/ports/output"
	"eventpulse/pkg/tz"
)

// brokenEvents fails expired-event selection and delegates everything else.
type brokenEvents struct {
	output.EventRepository
}

func (brokenEvents) ListExpired(context.Context, tz.Moment) ([]string, error) {
	return nil, errors.New("connection reset")
}

// racingEvents runs another cleanup between selection and deletion, the way
// an overlapping invocation would.
type racingEvents struct {
	output.EventRepository
	concurrent func()
}

func (r *racingEvents) ListExpired(ctx context.Context, cutoff tz.Moment) ([]string, error) {
	ids, err := r.EventRepository.ListExpired(ctx, cutoff)
	if err == nil && r.concurrent != nil {
		run := r.concurrent
		r.concurrent = nil
		run()
	}
	return ids, err
}

// flakyEventDeletes fails the first event deletion and delegates afterwards.
type flakyEventDeletes struct {
	output.EventRepository
	failed bool
}

func (f *flakyEventDeletes) DeleteByIDs(ctx context.Context, ids []string) ([]string, error) {
	if !f.failed {
		f.failed = true
		return nil, errors.New("statement timeout")
	}
	return f.EventRepository.DeleteByIDs(ctx, ids)
}
