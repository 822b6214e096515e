package http

import (
	"fmt"
	"net/http"
	"time"

	"calendar-assistant/internal/middleware"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/response"

	"github.com/gin-gonic/gin"
)

// Command godoc
// @Summary     Run a natural-language calendar command
// @Description Sends the prompt to the assistant and applies the single resulting action (create, update, delete or query) to the caller's calendar.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Param       X-CSRF-Token header string true "CSRF token from GET /api/v1/csrf"
// @Param       body body commandReq true "Prompt"
// @Success     200 {object} commandResp
// @Failure     400 {object} response.ErrorResp "Invalid input"
// @Failure     401 {object} response.ErrorResp "Unauthorized"
// @Failure     403 {object} response.ErrorResp "CSRF token invalid"
// @Failure     404 {object} response.ErrorResp "Event not found"
// @Failure     413 {object} response.ErrorResp "Payload too large"
// @Failure     422 {object} response.ErrorResp "Model output could not be parsed"
// @Failure     429 {object} response.ErrorResp "Rate limited"
// @Failure     500 {object} response.ErrorResp "Storage or server failure"
// @Failure     502 {object} response.ErrorResp "Model failure"
// @Router      /api/v1/ai/command [POST]
func (h *handler) Command(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()
	requestID := middleware.GetRequestID(c)

	req, err := h.processCommandReq(c)
	if err != nil {
		response.Error(c, h.mapError(err, requestID))
		return
	}

	sc, _ := model.GetScopeFromContext(ctx)
	output, err := h.uc.Execute(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "calendar.delivery.http.Command: uc.Execute: %v", err)
		response.Error(c, h.mapError(err, requestID))
		return
	}

	response.JSON(c, http.StatusOK, h.newCommandResp(output, requestID, time.Since(start)))
}

// List godoc
// @Summary     List events
// @Description Returns the caller's events overlapping [from, to), ordered by start.
// @Tags        Events
// @Produce     json
// @Param       from   query string false "RFC 3339, YYYY-MM-DD or relative (today, next monday)"
// @Param       to     query string false "RFC 3339, YYYY-MM-DD or relative"
// @Param       limit  query int    false "Page size (default: 50, max: 200)"
// @Param       offset query int    false "Page offset (default: 0)"
// @Success     200 {object} response.Resp{data=listResp}
// @Failure     400 {object} response.ErrorResp "Invalid input"
// @Failure     401 {object} response.ErrorResp "Unauthorized"
// @Failure     429 {object} response.ErrorResp "Rate limited"
// @Failure     500 {object} response.ErrorResp "Storage failure"
// @Router      /api/v1/events [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	requestID := middleware.GetRequestID(c)

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, h.mapError(err, requestID))
		return
	}

	sc, _ := model.GetScopeFromContext(ctx)
	output, err := h.uc.List(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "calendar.delivery.http.List: uc.List: %v", err)
		response.Error(c, h.mapError(err, requestID))
		return
	}

	response.OK(c, h.newListResp(output))
}

// Detail godoc
// @Summary     Get event detail
// @Description Returns one of the caller's events. Events owned by others are reported as not found.
// @Tags        Events
// @Produce     json
// @Param       id path string true "Event ID"
// @Success     200 {object} response.Resp{data=detailResp}
// @Failure     400 {object} response.ErrorResp "Invalid input"
// @Failure     401 {object} response.ErrorResp "Unauthorized"
// @Failure     404 {object} response.ErrorResp "Event not found"
// @Failure     500 {object} response.ErrorResp "Storage failure"
// @Router      /api/v1/events/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()
	requestID := middleware.GetRequestID(c)

	sc, _ := model.GetScopeFromContext(ctx)
	output, err := h.uc.Detail(ctx, sc, c.Param("id"))
	if err != nil {
		h.l.Warnf(ctx, "calendar.delivery.http.Detail: uc.Detail: %v", err)
		response.Error(c, h.mapError(err, requestID))
		return
	}

	response.OK(c, h.newDetailResp(output))
}

// Export godoc
// @Summary     Export events as iCalendar
// @Description Returns the caller's events in [from, to) as an RFC 5545 file.
// @Tags        Events
// @Produce     text/calendar
// @Param       from query string false "RFC 3339, YYYY-MM-DD or relative"
// @Param       to   query string false "RFC 3339, YYYY-MM-DD or relative"
// @Success     200 {string} string "iCalendar data"
// @Failure     400 {object} response.ErrorResp "Invalid input"
// @Failure     401 {object} response.ErrorResp "Unauthorized"
// @Failure     500 {object} response.ErrorResp "Storage failure"
// @Router      /api/v1/events/export.ics [GET]
func (h *handler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	requestID := middleware.GetRequestID(c)

	req, err := h.processExportReq(c)
	if err != nil {
		response.Error(c, h.mapError(err, requestID))
		return
	}

	sc, _ := model.GetScopeFromContext(ctx)
	output, err := h.uc.Export(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "calendar.delivery.http.Export: uc.Export: %v", err)
		response.Error(c, h.mapError(err, requestID))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", output.Content)
}
