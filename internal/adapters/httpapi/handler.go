package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"eventpulse/internal/domain/entities"
	"eventpulse/internal/ports/input"
	"eventpulse/internal/ports/output"
	"eventpulse/pkg/tz"
	"eventpulse/pkg/validator"
)

type Handler struct {
	events       input.EventUseCase
	participants input.ParticipantUseCase
	points       input.PointsUseCase
	reaper       input.ReaperUseCase
	clock        *tz.Normalizer
	translator   output.T
	log          zerolog.Logger
}

func NewHandler(
	events input.EventUseCase,
	participants input.ParticipantUseCase,
	points input.PointsUseCase,
	reaper input.ReaperUseCase,
	clock *tz.Normalizer,
	translator output.T,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		events:       events,
		participants: participants,
		points:       points,
		reaper:       reaper,
		clock:        clock,
		translator:   translator,
		log:          log,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListEvents(c *gin.Context) {
	now, err := h.clock.Now()
	if err != nil {
		h.fail(c, err)
		return
	}
	views, err := h.events.GetVisibleEvents(c.Request.Context(), now, output.EventFilter{City: c.Query("city")})
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]EventResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toViewResponse(v, h.translator, locale(c)))
	}
	ok(c, http.StatusOK, out)
}

func (h *Handler) EventState(c *gin.Context) {
	now, err := h.clock.Now()
	if err != nil {
		h.fail(c, err)
		return
	}
	view, err := h.events.ClassifyEvent(c.Request.Context(), c.Param("id"), now)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, toViewResponse(*view, h.translator, locale(c)))
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if err := validator.Validate(c.Request.Context(), req); err != nil {
		badRequest(c, err.Error())
		return
	}
	date, err := tz.ParseDate(req.Date)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	clock, err := tz.ParseTimeOfDay(req.Time)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	now, err := h.clock.Now()
	if err != nil {
		h.fail(c, err)
		return
	}

	event := &entities.Event{
		Name:            req.Name,
		Description:     req.Description,
		Location:        req.Location,
		Category:        entities.Category(req.Category),
		Date:            date,
		Time:            clock,
		MaxParticipants: req.MaxParticipants,
		CreatorID:       userID(c),
	}
	if err := h.events.CreateEvent(c.Request.Context(), event, now); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, toEventResponse(*event, h.translator, locale(c)))
}

func (h *Handler) MyEvents(c *gin.Context) {
	events, err := h.events.GetEventsByCreatorID(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e, h.translator, locale(c)))
	}
	ok(c, http.StatusOK, out)
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.events.CancelEvent(c.Request.Context(), c.Param("id"), userID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Join(c *gin.Context) {
	now, err := h.clock.Now()
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.participants.JoinEvent(c.Request.Context(), locale(c), userID(c), c.Param("id"), now)
	if err != nil {
		h.fail(c, err)
		return
	}
	p := res.Participant
	ok(c, http.StatusCreated, ParticipantResponse{
		ID:       p.ID,
		EventID:  p.EventID,
		UserID:   p.UserID,
		JoinedAt: p.JoinedAt,
		Message:  res.Message,
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	now, err := h.clock.Now()
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.participants.CancelParticipation(c.Request.Context(), locale(c), userID(c), c.Param("id"), now)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, CancelResponse{Penalty: res.Penalty, Tier: res.Tier.String(), Message: res.Message})
}

func (h *Handler) Score(c *gin.Context) {
	score, err := h.points.GetScore(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	entries := make([]LedgerEntryResponse, 0, len(score.Entries))
	for _, e := range score.Entries {
		entries = append(entries, LedgerEntryResponse{
			ID:        e.ID,
			EventID:   e.EventID,
			Points:    e.Points,
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt,
		})
	}
	ok(c, http.StatusOK, ScoreResponse{
		UserID:  score.UserID,
		Total:   score.Total,
		Message: h.translator.T(locale(c), "points.score", map[string]any{"Total": score.Total}),
		Entries: entries,
	})
}

func (h *Handler) Cleanup(c *gin.Context) {
	now, err := h.clock.Now()
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.reaper.RunCleanup(c.Request.Context(), now)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, CleanupResponse{
		Success:       true,
		Cutoff:        res.Cutoff.String(),
		DeletedCount:  res.DeletedCount,
		DeletedEvents: res.DeletedIDs,
	})
}
