package httpserver

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	calendarHTTP "calendar-assistant/internal/calendar/delivery/http"
	"calendar-assistant/internal/calendar/repository/sqlstore"
	calendarUC "calendar-assistant/internal/calendar/usecase"
	"calendar-assistant/internal/middleware"
	"calendar-assistant/pkg/csrf"
	"calendar-assistant/pkg/datemath"
	"calendar-assistant/pkg/log"
	"calendar-assistant/pkg/ratelimit"
)

const defaultShutdownTimeout = 30 * time.Second

// RateClasses are the named budgets applied across the API.
type RateClasses struct {
	AI   ratelimit.Class
	Read ratelimit.Class
	Auth ratelimit.Class
}

func (rc RateClasses) calendar() calendarHTTP.RateClasses {
	return calendarHTTP.RateClasses{AI: rc.AI, Read: rc.Read}
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration

	// Storage
	db      *sql.DB
	dialect sqlstore.Dialect

	// Boundary
	mw          middleware.Middleware
	csrfStore   *csrf.Store
	rateClasses RateClasses

	// Calendar domain
	llm        calendarUC.Completer
	mirror     calendarUC.Mirror
	dateMath   *datemath.Parser
	calendarUC calendarUC.Config

	// drain runs after the listener stops, before Run returns.
	drain []func()

	mapOnce sync.Once
	mapErr  error
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration

	// Storage
	DB      *sql.DB
	Dialect sqlstore.Dialect

	// Boundary
	Middleware  middleware.Middleware
	CSRFStore   *csrf.Store
	RateClasses RateClasses

	// Calendar domain. Mirror may be nil.
	LLM        calendarUC.Completer
	Mirror     calendarUC.Mirror
	DateMath   *datemath.Parser
	CalendarUC calendarUC.Config
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		db:              cfg.DB,
		dialect:         cfg.Dialect,
		mw:              cfg.Middleware,
		csrfStore:       cfg.CSRFStore,
		rateClasses:     cfg.RateClasses,
		llm:             cfg.LLM,
		mirror:          cfg.Mirror,
		dateMath:        cfg.DateMath,
		calendarUC:      cfg.CalendarUC,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.db == nil {
		return errors.New("database is required")
	}
	if srv.llm == nil {
		return errors.New("llm is required")
	}
	if srv.dateMath == nil {
		return errors.New("date math parser is required")
	}
	return nil
}
