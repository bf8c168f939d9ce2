package discord

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"eventpulse/internal/domain/entities"
	"eventpulse/internal/ports/input"
)

type keyTranslator struct{}

func (keyTranslator) T(_, key string, _ map[string]any) string { return key }

func newTestHandler() *Handler {
	return NewHandler(nil, nil, nil, nil, keyTranslator{}, zerolog.Nop())
}

func TestInteractionUserID(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "member"}},
	}}
	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "dm-user"},
	}}
	if got := interactionUserID(guild); got != "member" {
		t.Fatalf("guild user = %q", got)
	}
	if got := interactionUserID(dm); got != "dm-user" {
		t.Fatalf("dm user = %q", got)
	}
}

func TestEventButtons(t *testing.T) {
	h := newTestHandler()

	row := h.eventButtons("", "ev-1", strings.Repeat("ç", 60), false, true)
	if len(row.Components) != 2 {
		t.Fatalf("components = %d, want 2", len(row.Components))
	}
	join := row.Components[0].(discordgo.Button)
	if join.CustomID != joinButtonPrefix+"ev-1" || !join.Disabled {
		t.Fatalf("join button = %+v", join)
	}
	if n := utf8.RuneCountInString(join.Label); n > 80 || !utf8.ValidString(join.Label) {
		t.Fatalf("label = %q (%d runes)", join.Label, n)
	}
	cancel := row.Components[1].(discordgo.Button)
	if cancel.CustomID != cancelButtonPrefix+"ev-1" || cancel.Disabled {
		t.Fatalf("cancel button = %+v", cancel)
	}

	row = h.eventButtons("", "ev-2", "Corrida", true, false)
	if len(row.Components) != 1 {
		t.Fatalf("components = %d, want only join", len(row.Components))
	}
	if join := row.Components[0].(discordgo.Button); join.Disabled {
		t.Fatalf("join disabled for an open event: %+v", join)
	}
}

type membership struct {
	input.ParticipantUseCase
	joined map[string]bool
	err    error
}

func (m membership) IsParticipant(_ context.Context, _, eventID string) (bool, error) {
	return m.joined[eventID], m.err
}

func TestEventRowFollowsParticipation(t *testing.T) {
	open := input.EventView{Event: entities.Event{ID: "ev", Name: "Corrida"}}
	tests := []struct {
		name        string
		members     membership
		wantButtons int
	}{
		{"joined", membership{joined: map[string]bool{"ev": true}}, 2},
		{"not joined", membership{joined: map[string]bool{}}, 1},
		{"lookup fails", membership{err: errors.New("db down")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(nil, tt.members, nil, nil, keyTranslator{}, zerolog.Nop())
			row := h.eventRow(context.Background(), "", "u1", open)
			if len(row.Components) != tt.wantButtons {
				t.Fatalf("buttons = %d, want %d", len(row.Components), tt.wantButtons)
			}
		})
	}
}

func TestCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range newTestHandler().Commands() {
		names[c.Name] = true
	}
	for _, want := range []string{commandEvents, commandPoints, commandCreate} {
		if !names[want] {
			t.Fatalf("command %q not registered", want)
		}
	}
}
