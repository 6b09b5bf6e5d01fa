package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"collab-relay/internal/handlers"
	"collab-relay/internal/models"
	"collab-relay/internal/store"
	"collab-relay/internal/ws"
)

func newTestRouter(sessions *store.SessionStore, hub *ws.Hub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewSessionHandler(sessions, hub)

	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/api/sessions", h.ListSessions)
	router.GET("/api/sessions/:projectId", h.GetSession)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	sessions := store.NewSessionStore()
	hub := ws.NewHub()
	sessions.Join("p1", models.Participant{ConnectionID: "c1", UserName: "alice", JoinedAt: 1})
	router := newTestRouter(sessions, hub)

	w := get(router, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	body := gjson.Parse(w.Body.String())
	assert.Equal(t, "OK", body.Get("status").String())
	assert.EqualValues(t, 1, body.Get("activeSessions").Int())
	assert.EqualValues(t, 0, body.Get("connections").Int())
	assert.Greater(t, body.Get("timestamp").Int(), int64(0))
	assert.True(t, body.Get("uptime").Exists())
}

func TestListSessions(t *testing.T) {
	sessions := store.NewSessionStore()
	router := newTestRouter(sessions, ws.NewHub())

	w := get(router, "/api/sessions")
	require.Equal(t, http.StatusOK, w.Code)
	body := gjson.Parse(w.Body.String())
	assert.EqualValues(t, 0, body.Get("totalSessions").Int())
	assert.Len(t, body.Get("sessions").Array(), 0)

	sessions.Join("p2", models.Participant{ConnectionID: "c1", UserName: "alice", JoinedAt: 1})
	sessions.Join("p1", models.Participant{ConnectionID: "c2", UserName: "bob", JoinedAt: 2})

	w = get(router, "/api/sessions")
	require.Equal(t, http.StatusOK, w.Code)
	body = gjson.Parse(w.Body.String())
	assert.EqualValues(t, 2, body.Get("totalSessions").Int())
	list := body.Get("sessions").Array()
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].Get("projectId").String(), "summaries sorted by project id")
	assert.EqualValues(t, 1, list[0].Get("participantCount").Int())
}

func TestGetSession(t *testing.T) {
	sessions := store.NewSessionStore()
	router := newTestRouter(sessions, ws.NewHub())

	sessions.Join("p1", models.Participant{ConnectionID: "c1", UserName: "alice", JoinedAt: 10})
	sessions.Join("p1", models.Participant{ConnectionID: "c2", UserName: "bob", JoinedAt: 20})

	w := get(router, "/api/sessions/p1")
	require.Equal(t, http.StatusOK, w.Code)
	body := gjson.Parse(w.Body.String())
	assert.Equal(t, "p1", body.Get("projectId").String())
	assert.EqualValues(t, 2, body.Get("participantCount").Int())
	participants := body.Get("participants").Array()
	require.Len(t, participants, 2)
	assert.Equal(t, "alice", participants[0].Get("userName").String())
	assert.Equal(t, "c1", participants[0].Get("connectionId").String())
	// The reduced view never leaks profile data.
	assert.False(t, participants[0].Get("profile").Exists())
}

func TestGetSessionNotFound(t *testing.T) {
	sessions := store.NewSessionStore()
	router := newTestRouter(sessions, ws.NewHub())

	w := get(router, "/api/sessions/nope")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Session not found", gjson.Get(w.Body.String(), "error").String())
}

func TestSessionGoneAfterLastLeave(t *testing.T) {
	sessions := store.NewSessionStore()
	router := newTestRouter(sessions, ws.NewHub())

	sessions.Join("p1", models.Participant{ConnectionID: "c1", UserName: "alice", JoinedAt: 1})
	sessions.Leave("p1", "c1")

	w := get(router, "/api/sessions/p1")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(router, "/api/sessions")
	assert.EqualValues(t, 0, gjson.Get(w.Body.String(), "totalSessions").Int())
}
