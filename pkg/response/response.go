package response

import (
	"net/http"

	pkgErrors "calendar-assistant/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// JSON sends body as-is with the given status.
func JSON(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// Error aborts with the failure envelope. An *HTTPError anywhere in the chain
// selects status, code and details; anything else is a generic server failure.
func Error(c *gin.Context, err error) {
	httpErr, ok := pkgErrors.AsHTTPError(err)
	if !ok {
		InternalError(c, err)
		return
	}
	c.AbortWithStatusJSON(httpErr.StatusCode, ErrorResp{
		Error:   httpErr.Message,
		Code:    httpErr.Code,
		Details: httpErr.Details,
	})
}

// InternalError aborts with 500. The cause is never written to the body.
func InternalError(c *gin.Context, _ error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResp{
		Error: DefaultErrorMessage,
		Code:  CodeServerFailure,
	})
}

// Unauthorized aborts with 401.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResp{
		Error: "Unauthorized",
		Code:  CodeUnauthorized,
	})
}

// Forbidden aborts with 403.
func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, ErrorResp{
		Error: "Forbidden",
		Code:  CodeForbidden,
	})
}
