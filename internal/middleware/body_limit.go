package middleware

import (
	"net/http"

	"calendar-assistant/pkg/response"

	"github.com/gin-gonic/gin"
)

// BodyLimit rejects declared lengths over the limit up front and caps the
// body reader for undeclared or understated ones.
func (m Middleware) BodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > m.maxBodyBytes {
			m.l.Warnf(c.Request.Context(), "middleware.BodyLimit: content length %d exceeds %d", c.Request.ContentLength, m.maxBodyBytes)
			response.Error(c, errPayloadTooLarge)
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, m.maxBodyBytes)
		}
		c.Next()
	}
}
