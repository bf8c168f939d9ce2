package validator

import (
	"context"
	"strings"
	"testing"
)

type sample struct {
	Name     string `validate:"notblank,max=5"`
	Capacity int    `validate:"gt=0"`
	Current  int    `validate:"gte=0,ltefield=Capacity"`
	Kind     string `validate:"oneof=a b"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   sample
		want string
	}{
		{name: "valid", in: sample{Name: "ok", Capacity: 2, Current: 2, Kind: "a"}},
		{name: "blank", in: sample{Name: "   ", Capacity: 2, Kind: "a"}, want: ErrFieldBlank},
		{name: "too long", in: sample{Name: "toolong", Capacity: 2, Kind: "a"}, want: ErrFieldExceedsMaxLen},
		{name: "zero capacity", in: sample{Name: "ok", Kind: "a"}, want: ErrFieldBelowMinVal},
		{name: "over capacity", in: sample{Name: "ok", Capacity: 1, Current: 2, Kind: "a"}, want: ErrFieldExceedsMaxVal},
		{name: "bad kind", in: sample{Name: "ok", Capacity: 1, Kind: "c"}, want: ErrFieldNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(context.Background(), tt.in)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.HasPrefix(err.Error(), tt.want) {
				t.Fatalf("err = %v, want prefix %q", err, tt.want)
			}
		})
	}
}
