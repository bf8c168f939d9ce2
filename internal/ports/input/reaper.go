package input

import (
	"context"

	"eventpulse/pkg/tz"
)

type CleanupResult struct {
	Cutoff       tz.Moment
	DeletedCount int64
	DeletedIDs   []string
}

type ReaperUseCase interface {
	RunCleanup(ctx context.Context, now tz.Moment) (*CleanupResult, error)
}
