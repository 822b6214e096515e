package http

import (
	"calendar-assistant/internal/calendar"
	"calendar-assistant/pkg/datemath"
	"calendar-assistant/pkg/log"

	"github.com/gin-gonic/gin"
)

// Handler is the public interface for the calendar HTTP delivery layer.
type Handler interface {
	Command(c *gin.Context)
	List(c *gin.Context)
	Detail(c *gin.Context)
	Export(c *gin.Context)
}

type handler struct {
	l        log.Logger
	uc       calendar.UseCase
	dateMath *datemath.Parser
}

// New creates a new HTTP handler for the calendar domain.
func New(l log.Logger, uc calendar.UseCase, dateMath *datemath.Parser) *handler {
	return &handler{
		l:        l,
		uc:       uc,
		dateMath: dateMath,
	}
}
