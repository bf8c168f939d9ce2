package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("boom"), ""},
		{ErrCapacityExceeded, "capacity_exceeded"},
		{fmt.Errorf("join event: %w", ErrDuplicateParticipation), "duplicate_participation"},
		{fmt.Errorf("%w: list events: timeout", ErrSelection), "selection_failure"},
		{ErrClockUnavailable, "clock_unavailable"},
	}
	for _, tt := range tests {
		if got := Code(tt.err); got != tt.want {
			t.Fatalf("Code(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
