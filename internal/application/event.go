package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"eventpulse/internal/domain"
	"eventpulse/internal/domain/entities"
	"eventpulse/internal/domain/lifecycle"
	"eventpulse/internal/ports/input"
	"eventpulse/internal/ports/output"
	"eventpulse/pkg/tz"
)

var _ input.EventUseCase = (*EventService)(nil)

type EventService struct {
	eventRepo       output.EventRepository
	participantRepo output.ParticipantRepository
	log             zerolog.Logger
}

func NewEventService(
	eventRepo output.EventRepository,
	participantRepo output.ParticipantRepository,
	log zerolog.Logger,
) *EventService {
	return &EventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		log:             log,
	}
}

// GetVisibleEvents lists the events still shown at now, each with its state.
func (s *EventService) GetVisibleEvents(ctx context.Context, now tz.Moment, filter output.EventFilter) (views []input.EventView, err error) {
	ctx, span := startSpan(ctx, "events.visible", trace.WithAttributes(attribute.String("city", filter.City)))
	defer func() { endSpan(span, err) }()

	if now.IsZero() {
		return nil, domain.ErrClockUnavailable
	}
	all, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	visible, err := lifecycle.Visible(all, now)
	if err != nil {
		return nil, err
	}
	views = make([]input.EventView, 0, len(visible))
	for i := range visible {
		state, err := lifecycle.Classify(&visible[i], now)
		if err != nil {
			return nil, err
		}
		views = append(views, input.EventView{Event: visible[i], State: state})
	}
	return views, nil
}

func (s *EventService) ClassifyEvent(ctx context.Context, eventID string, now tz.Moment) (view *input.EventView, err error) {
	ctx, span := startSpan(ctx, "events.classify", trace.WithAttributes(attribute.String("event_id", eventID)))
	defer func() { endSpan(span, err) }()

	if now.IsZero() {
		return nil, domain.ErrClockUnavailable
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	state, err := lifecycle.Classify(event, now)
	if err != nil {
		return nil, err
	}
	return &input.EventView{Event: *event, State: state}, nil
}

// CreateEvent assigns an id and stores the event. Events must start after now.
func (s *EventService) CreateEvent(ctx context.Context, event *entities.Event, now tz.Moment) (err error) {
	ctx, span := startSpan(ctx, "events.create")
	defer func() { endSpan(span, err) }()

	if now.IsZero() {
		return domain.ErrClockUnavailable
	}
	event.Name = strings.TrimSpace(event.Name)
	event.Location = strings.TrimSpace(event.Location)
	if event.Category == "" {
		event.Category = entities.DefaultCategory
	}
	event.CurrentParticipants = 0
	if err := event.Validate(ctx); err != nil {
		return err
	}
	if !now.Instant().Before(event.EffectiveAt()) {
		return domain.ErrDateTimeInPast
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return err
	}
	s.log.Info().Str("event_id", event.ID).Str("creator_id", event.CreatorID).Msg("event created")
	return nil
}

// CancelEvent removes an event on behalf of its creator. Participants go
// first, as in the cleanup job.
func (s *EventService) CancelEvent(ctx context.Context, eventID, creatorID string) (err error) {
	ctx, span := startSpan(ctx, "events.cancel", trace.WithAttributes(attribute.String("event_id", eventID)))
	defer func() { endSpan(span, err) }()

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.CreatorID != creatorID {
		return domain.ErrNotOrganizer
	}
	ids := []string{event.ID}
	if _, err := s.participantRepo.DeleteByEventIDs(ctx, ids); err != nil {
		return fmt.Errorf("delete participants: %w", err)
	}
	if _, err := s.eventRepo.DeleteByIDs(ctx, ids); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.log.Info().Str("event_id", eventID).Msg("event cancelled by organizer")
	return nil
}

func (s *EventService) GetEventsByCreatorID(ctx context.Context, creatorID string) ([]entities.Event, error) {
	return s.eventRepo.ListByCreator(ctx, creatorID)
}
