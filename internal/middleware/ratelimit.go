package middleware

import (
	"strconv"

	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/ratelimit"
	"calendar-assistant/pkg/response"

	"github.com/gin-gonic/gin"
)

// Rate-limit telemetry headers.
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

// KeyFunc picks the identifier a request is counted under.
type KeyFunc func(c *gin.Context) string

// ByUser counts per authenticated user. Must run after Auth.
func ByUser(c *gin.Context) string {
	sc, _ := model.GetScopeFromContext(c.Request.Context())
	return "user:" + sc.UserID
}

// ByIP counts per client address.
func ByIP(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// RateLimit enforces class for the identifier key returns.
func (m Middleware) RateLimit(class ratelimit.Class, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		res, err := ratelimit.CheckClass(ctx, m.limiter, class, key(c))
		if err != nil {
			m.l.Errorf(ctx, "middleware.RateLimit: class=%s: %v", class.Name, err)
			response.Error(c, errServerFailure.WithDetails(map[string]any{"requestId": GetRequestID(c)}))
			return
		}

		c.Header(HeaderRateLimitLimit, strconv.Itoa(res.Limit))
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(res.Remaining))
		c.Header(HeaderRateLimitReset, strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			c.Header(HeaderRetryAfter, strconv.Itoa(res.RetryAfter))
			response.Error(c, errRateLimited.WithDetails(map[string]any{"retryAfter": res.RetryAfter}))
			return
		}
		c.Next()
	}
}
