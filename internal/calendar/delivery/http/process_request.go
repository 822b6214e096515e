package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"calendar-assistant/internal/calendar/validator"
	"calendar-assistant/internal/middleware"

	"github.com/gin-gonic/gin"
)

// processCommandReq decodes {prompt}. The prompt's type is checked by the
// use case so non-strings get a precise rule.
func (h *handler) processCommandReq(c *gin.Context) (commandReq, error) {
	var req commandReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return req, middleware.PayloadTooLarge()
		}
		return req, validator.NewError("body", validator.RuleFormat, "request body must be a JSON object")
	}
	return req, nil
}

// processListReq reads from, to, limit and offset from the query string.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	var err error

	if req.From, err = h.parseBound(c.Query("from"), "from"); err != nil {
		return req, err
	}
	if req.To, err = h.parseBound(c.Query("to"), "to"); err != nil {
		return req, err
	}
	if req.Limit, err = parseInt(c.Query("limit"), "limit"); err != nil {
		return req, err
	}
	if req.Offset, err = parseInt(c.Query("offset"), "offset"); err != nil {
		return req, err
	}
	return req, nil
}

// processExportReq reads from and to from the query string.
func (h *handler) processExportReq(c *gin.Context) (exportReq, error) {
	var req exportReq
	var err error

	if req.From, err = h.parseBound(c.Query("from"), "from"); err != nil {
		return req, err
	}
	if req.To, err = h.parseBound(c.Query("to"), "to"); err != nil {
		return req, err
	}
	return req, nil
}

// parseBound accepts RFC 3339, a bare date (local midnight) or a relative
// day such as "today" or "next friday". Empty means unbounded.
func (h *handler) parseBound(raw, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}

	loc := h.dateMath.Location()
	if t, err := validator.ParseTime(raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return t, nil
	}
	if t, err := h.dateMath.Parse(raw, time.Now()); err == nil {
		return t, nil
	}
	return time.Time{}, validator.NewError(field, validator.RuleFormat, "%s is not a valid date", field)
}

func parseInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validator.NewError(field, validator.RuleFormat, "%s must be an integer", field)
	}
	return n, nil
}
