package discord

import (
	"github.com/rs/zerolog"

	"eventpulse/internal/ports/input"
	"eventpulse/internal/ports/output"
	"eventpulse/pkg/tz"
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	eventUseCase       input.EventUseCase
	participantUseCase input.ParticipantUseCase
	pointsUseCase      input.PointsUseCase
	clock              *tz.Normalizer
	translator         output.T
	log                zerolog.Logger
}

func NewHandler(
	eventUseCase input.EventUseCase,
	participantUseCase input.ParticipantUseCase,
	pointsUseCase input.PointsUseCase,
	clock *tz.Normalizer,
	translator output.T,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		eventUseCase:       eventUseCase,
		participantUseCase: participantUseCase,
		pointsUseCase:      pointsUseCase,
		clock:              clock,
		translator:         translator,
		log:                log,
	}
}

func (h *Handler) translate(locale, key string, data map[string]any) string {
	return h.translator.T(locale, key, data)
}
