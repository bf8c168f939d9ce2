package httpapi

import (
	"time"

	"eventpulse/internal/domain/entities"
	"eventpulse/internal/domain/lifecycle"
	"eventpulse/internal/ports/input"
	"eventpulse/internal/ports/output"
)

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

type CreateEventRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	Description     string `json:"description" validate:"max=4000"`
	Location        string `json:"location" validate:"required,max=255"`
	Category        string `json:"category"`
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"required"`
	MaxParticipants int    `json:"max_participants" validate:"gt=0"`
}

type EventResponse struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	Location            string           `json:"location"`
	Category            string           `json:"category"`
	CategoryLabel       string           `json:"category_label"`
	Date                string           `json:"date"`
	Time                string           `json:"time"`
	MaxParticipants     int              `json:"max_participants"`
	CurrentParticipants int              `json:"current_participants"`
	CreatorID           string           `json:"creator_id"`
	CreatedAt           time.Time        `json:"created_at"`
	State               *lifecycle.State `json:"state,omitempty"`
	Badges              []string         `json:"badges,omitempty"`
	CanJoin             *bool            `json:"can_join,omitempty"`
}

type ParticipantResponse struct {
	ID       int64     `json:"id"`
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
	Message  string    `json:"message"`
}

type CancelResponse struct {
	Penalty int    `json:"penalty"`
	Tier    string `json:"tier"`
	Message string `json:"message"`
}

type LedgerEntryResponse struct {
	ID        int64     `json:"id"`
	EventID   string    `json:"event_id,omitempty"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

type ScoreResponse struct {
	UserID  string                `json:"user_id"`
	Total   int                   `json:"total"`
	Message string                `json:"message"`
	Entries []LedgerEntryResponse `json:"entries"`
}

type CleanupResponse struct {
	Success       bool     `json:"success"`
	Cutoff        string   `json:"cutoff"`
	DeletedCount  int64    `json:"deleted_count"`
	DeletedEvents []string `json:"deleted_events"`
}

func toEventResponse(e entities.Event, t output.T, locale string) EventResponse {
	return EventResponse{
		ID:                  e.ID,
		Name:                e.Name,
		Description:         e.Description,
		Location:            e.Location,
		Category:            string(e.Category),
		CategoryLabel:       t.T(locale, "category."+string(e.Category), nil),
		Date:                e.Date.String(),
		Time:                e.Time.Short(),
		MaxParticipants:     e.MaxParticipants,
		CurrentParticipants: e.CurrentParticipants,
		CreatorID:           e.CreatorID,
		CreatedAt:           e.CreatedAt,
	}
}

func toViewResponse(v input.EventView, t output.T, locale string) EventResponse {
	resp := toEventResponse(v.Event, t, locale)
	state := v.State
	canJoin := state.CanJoin()
	resp.State = &state
	resp.CanJoin = &canJoin
	for _, b := range state.Badges() {
		resp.Badges = append(resp.Badges, string(b))
	}
	return resp
}
