package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "calendar-assistant/pkg/errors"
	"calendar-assistant/pkg/response"
)

func TestResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("OK", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.OK(c, map[string]string{"foo": "bar"})

		require.Equal(t, http.StatusOK, w.Code)
		var resp response.Resp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.ErrorCode)
		dMap, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "bar", dMap["foo"])
	})

	t.Run("Error uses HTTPError", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		err := pkgErrors.NewHTTPError(http.StatusBadRequest, "INVALID_INPUT", "title is required").
			WithDetails(map[string]any{"field": "title"})
		response.Error(c, err)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp response.ErrorResp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_INPUT", resp.Code)
		assert.Equal(t, "title is required", resp.Error)
		assert.Equal(t, "title", resp.Details["field"])
		assert.True(t, c.IsAborted())
	})

	t.Run("Error hides unknown errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Error(c, errors.New("pq: connection refused"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pq:")
		assert.Contains(t, w.Body.String(), response.CodeServerFailure)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Unauthorized(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Forbidden(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
