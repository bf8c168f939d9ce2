package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter wires the public API. cleanupToken protects POST /v1/cleanup.
func NewRouter(h *Handler, cleanupToken string, log zerolog.Logger) *gin.Engine {
	app := gin.New()
	app.Use(gin.Recovery())
	app.Use(requestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "Accept-Language", headerUserID},
	}))
	app.Use(negotiateLocale())

	app.GET("/healthz", h.Health)

	v1 := app.Group("/v1")
	v1.GET("/events", h.ListEvents)
	v1.GET("/events/:id/state", h.EventState)
	v1.GET("/users/:id/points", h.Score)
	v1.POST("/cleanup", requireToken(cleanupToken), h.Cleanup)

	authed := v1.Group("", requireUser())
	authed.POST("/events", h.CreateEvent)
	authed.GET("/me/events", h.MyEvents)
	authed.DELETE("/events/:id", h.DeleteEvent)
	authed.POST("/events/:id/join", h.Join)
	authed.POST("/events/:id/cancel", h.Cancel)

	return app
}
