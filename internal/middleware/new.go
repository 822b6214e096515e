package middleware

import (
	"calendar-assistant/pkg/csrf"
	"calendar-assistant/pkg/log"
	"calendar-assistant/pkg/ratelimit"
	"calendar-assistant/pkg/scope"
)

const (
	DefaultCookieName   = "session"
	DefaultCSRFHeader   = "X-CSRF-Token"
	DefaultMaxBodyBytes = 10 * 1024
)

// Config carries the settings the middlewares need.
type Config struct {
	CookieName   string
	CSRFHeader   string
	MaxBodyBytes int64
}

type Middleware struct {
	l            log.Logger
	jwtManager   scope.Manager
	limiter      ratelimit.Limiter
	csrfStore    *csrf.Store
	cookieName   string
	csrfHeader   string
	maxBodyBytes int64
}

// New builds the middleware set. csrfStore may be nil to disable CSRF checks.
func New(l log.Logger, jwtManager scope.Manager, limiter ratelimit.Limiter, csrfStore *csrf.Store, cfg Config) Middleware {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.CSRFHeader == "" {
		cfg.CSRFHeader = DefaultCSRFHeader
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return Middleware{
		l:            l,
		jwtManager:   jwtManager,
		limiter:      limiter,
		csrfStore:    csrfStore,
		cookieName:   cfg.CookieName,
		csrfHeader:   cfg.CSRFHeader,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// CSRFHeader is the header the CSRF middleware reads.
func (m Middleware) CSRFHeader() string {
	return m.csrfHeader
}
