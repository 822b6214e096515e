package httpserver

import (
	"context"
	"net/http"

	"calendar-assistant/internal/middleware"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/response"

	"github.com/gin-gonic/gin"
)

type csrfResp struct {
	Token  string `json:"csrfToken"`
	Header string `json:"header"`
}

func (srv *HTTPServer) registerSessionRoutes(api *gin.RouterGroup) {
	if srv.csrfStore == nil {
		srv.l.Infof(context.Background(), "CSRF disabled, skipping /api/v1/csrf")
		return
	}
	api.GET("/csrf", srv.mw.RateLimit(srv.rateClasses.Auth, middleware.ByIP), srv.mw.Auth(), srv.issueCSRF)
}

// issueCSRF godoc
// @Summary     Issue a CSRF token
// @Description Issues a fresh anti-forgery token bound to the session. Earlier tokens for the session stop working.
// @Tags        Session
// @Produce     json
// @Success     200 {object} response.Resp{data=csrfResp}
// @Failure     401 {object} response.ErrorResp "Unauthorized"
// @Failure     429 {object} response.ErrorResp "Rate limited"
// @Router      /api/v1/csrf [GET]
func (srv *HTTPServer) issueCSRF(c *gin.Context) {
	ctx := c.Request.Context()
	sc, _ := model.GetScopeFromContext(ctx)

	tok, err := srv.csrfStore.Issue(sc.UserID)
	if err != nil {
		srv.l.Errorf(ctx, "httpserver.issueCSRF: %v", err)
		response.InternalError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	response.JSON(c, http.StatusOK, response.NewOKResp(csrfResp{Token: tok, Header: srv.mw.CSRFHeader()}))
}
