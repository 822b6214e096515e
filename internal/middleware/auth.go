package middleware

import (
	"strings"

	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth resolves the caller from the session cookie or a Bearer token. No
// identity stops the chain before any other work.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		tok := m.sessionToken(c)
		if tok == "" {
			response.Error(c, errUnauthorized)
			return
		}

		payload, err := m.jwtManager.Verify(tok)
		if err != nil {
			m.l.Debugf(ctx, "middleware.Auth: %v", err)
			response.Error(c, errUnauthorized)
			return
		}

		sc := model.Scope{UserID: payload.UserID, Username: payload.Username}
		c.Request = c.Request.WithContext(model.SetScopeToContext(ctx, sc))
		c.Next()
	}
}

func (m Middleware) sessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	if v, err := c.Cookie(m.cookieName); err == nil {
		return v
	}
	return ""
}
