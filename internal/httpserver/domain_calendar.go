package httpserver

import (
	"context"

	calendarHTTP "calendar-assistant/internal/calendar/delivery/http"
	"calendar-assistant/internal/calendar/repository/sqlstore"
	calendarUC "calendar-assistant/internal/calendar/usecase"

	"github.com/gin-gonic/gin"
)

// setupCalendarDomain initializes the calendar domain and registers its routes.
func (srv *HTTPServer) setupCalendarDomain(ctx context.Context, api *gin.RouterGroup) error {
	// 1. Repository
	repo := sqlstore.New(srv.db, srv.dialect, srv.l)

	// 2. UseCase
	uc := calendarUC.New(srv.l, srv.llm, repo, srv.mirror, srv.dateMath, srv.calendarUC)
	srv.drain = append(srv.drain, uc.Wait)

	// 3. HTTP Handler
	h := calendarHTTP.New(srv.l, uc, srv.dateMath)

	// 4. Routes: /api/v1/ai/command, /api/v1/events
	calendarHTTP.RegisterRoutes(api, h, srv.mw, srv.rateClasses.calendar())

	srv.l.Infof(ctx, "Calendar domain registered (mirror enabled: %t)", srv.mirror != nil)
	return nil
}
