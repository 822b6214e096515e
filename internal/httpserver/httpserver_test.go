package httpserver

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"calendar-assistant/internal/calendar/repository/sqlstore"
	"calendar-assistant/internal/middleware"
	"calendar-assistant/pkg/csrf"
	"calendar-assistant/pkg/datemath"
	"calendar-assistant/pkg/log"
	"calendar-assistant/pkg/ratelimit"
	"calendar-assistant/pkg/scope"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type cannedLLM struct {
	reply string
}

func (c cannedLLM) Complete(context.Context, string, string) (string, error) {
	return c.reply, nil
}

type testEnv struct {
	srv     *HTTPServer
	handler http.Handler
	jm      scope.Manager
	db      *sql.DB
}

func newTestEnv(t *testing.T, reply string) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlstore.EnsureSchema(context.Background(), db))

	jm, err := scope.New("test-secret", "calendar-assistant")
	require.NoError(t, err)
	store := csrf.NewStore(16, time.Hour)
	dm, err := datemath.NewParser("UTC")
	require.NoError(t, err)

	l := log.NewNop()
	srv, err := New(l, Config{
		Logger:      l,
		Port:        8080,
		Mode:        gin.TestMode,
		Environment: "test",
		DB:          db,
		Dialect:     sqlstore.DialectSQLite,
		Middleware:  middleware.New(l, jm, ratelimit.NewMemory(), store, middleware.Config{}),
		CSRFStore:   store,
		RateClasses: RateClasses{
			AI:   ratelimit.Class{Name: "ai", Limit: 10, Window: time.Minute},
			Read: ratelimit.Class{Name: "read", Limit: 100, Window: time.Minute},
			Auth: ratelimit.Class{Name: "auth", Limit: 2, Window: time.Minute},
		},
		LLM:      cannedLLM{reply: reply},
		DateMath: dm,
	})
	require.NoError(t, err)

	h, err := srv.Handler()
	require.NoError(t, err)
	return &testEnv{srv: srv, handler: h, jm: jm, db: db}
}

func (e *testEnv) request(t *testing.T, method, path, userID, csrfToken string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		tok, err := e.jm.CreateToken(scope.Payload{UserID: userID, Username: userID}, time.Hour)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: middleware.DefaultCookieName, Value: tok})
	}
	if csrfToken != "" {
		req.Header.Set(middleware.DefaultCSRFHeader, csrfToken)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) issueCSRF(t *testing.T, userID string) string {
	t.Helper()
	w := e.request(t, http.MethodGet, "/api/v1/csrf", userID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data csrfResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Token, 64)
	return body.Data.Token
}

func TestNewValidates(t *testing.T) {
	_, err := New(log.NewNop(), Config{Logger: log.NewNop(), Mode: gin.TestMode})
	assert.Error(t, err)
}

func TestSystemRoutes(t *testing.T) {
	env := newTestEnv(t, "")

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := env.request(t, http.MethodGet, path, "", "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID), path)
	}

	require.NoError(t, env.db.Close())
	w := env.request(t, http.MethodGet, "/ready", "", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandlerIsIdempotent(t *testing.T) {
	env := newTestEnv(t, "")

	var again http.Handler
	require.NotPanics(t, func() {
		var err error
		again, err = env.srv.Handler()
		require.NoError(t, err)
	})
	assert.Same(t, env.handler, again)

	w := env.request(t, http.MethodGet, "/health", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCommandRoundTrip(t *testing.T) {
	env := newTestEnv(t, "```json\n"+`{
		"action": "create",
		"event": {"title": "Lunch with Sam", "start": "2030-01-02T12:00:00Z", "end": "2030-01-02T13:00:00Z"},
		"message": "Lunch booked."
	}`+"\n```")

	tok := env.issueCSRF(t, "alice")

	w := env.request(t, http.MethodPost, "/api/v1/ai/command", "alice", tok, []byte(`{"prompt":"lunch with Sam on Jan 2 2030 at noon"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Success bool   `json:"success"`
		Action  string `json:"action"`
		Event   struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"event"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "create", created.Action)
	assert.Equal(t, "Lunch booked.", created.Message)
	require.NotEmpty(t, created.Event.ID)

	w = env.request(t, http.MethodGet, "/api/v1/events?from=2030-01-01&to=2030-01-03", "alice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lunch with Sam")

	w = env.request(t, http.MethodGet, "/api/v1/events/"+created.Event.ID, "bob", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/events/export.ics?from=2030-01-01&to=2030-01-03", "alice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SUMMARY:Lunch with Sam")
}

func TestCommandRequiresCSRF(t *testing.T) {
	env := newTestEnv(t, `{"action":"query","results":[]}`)

	w := env.request(t, http.MethodPost, "/api/v1/ai/command", "alice", "", []byte(`{"prompt":"hi"}`))
	assert.Equal(t, http.StatusForbidden, w.Code)

	bobTok := env.issueCSRF(t, "bob")
	w = env.request(t, http.MethodPost, "/api/v1/ai/command", "alice", bobTok, []byte(`{"prompt":"hi"}`))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFIssueIsRateLimitedByIP(t *testing.T) {
	env := newTestEnv(t, "")

	env.issueCSRF(t, "alice")
	env.issueCSRF(t, "bob")

	w := env.request(t, http.MethodGet, "/api/v1/csrf", "carol", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
