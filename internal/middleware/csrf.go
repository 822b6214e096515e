package middleware

import (
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/response"

	"github.com/gin-gonic/gin"
)

// CSRF requires the caller's live anti-forgery token in the configured
// header. Must run after Auth.
func (m Middleware) CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.csrfStore == nil {
			c.Next()
			return
		}

		sc, ok := model.GetScopeFromContext(c.Request.Context())
		if !ok {
			response.Error(c, errUnauthorized)
			return
		}

		if !m.csrfStore.Verify(sc.UserID, c.GetHeader(m.csrfHeader)) {
			m.l.Warnf(c.Request.Context(), "middleware.CSRF: rejected token user=%s", sc.UserID)
			response.Error(c, errCSRFInvalid)
			return
		}
		c.Next()
	}
}
