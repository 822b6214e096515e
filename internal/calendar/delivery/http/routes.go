package http

import (
	"calendar-assistant/internal/middleware"
	"calendar-assistant/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateClasses are the budgets applied to calendar routes.
type RateClasses struct {
	AI   ratelimit.Class
	Read ratelimit.Class
}

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// Identity is checked before any rate-limit or body work.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware, rc RateClasses) {
	rg.POST("/ai/command",
		mw.Auth(), mw.BodyLimit(), mw.CSRF(), mw.RateLimit(rc.AI, middleware.ByUser), h.Command)

	events := rg.Group("/events", mw.Auth(), mw.RateLimit(rc.Read, middleware.ByUser))
	{
		events.GET("", h.List)
		events.GET("/export.ics", h.Export)
		events.GET("/:id", h.Detail)
	}
}
