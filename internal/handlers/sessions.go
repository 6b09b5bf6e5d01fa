package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"collab-relay/internal/models"
	"collab-relay/internal/protocol"
	"collab-relay/internal/store"
	"collab-relay/internal/ws"
)

// SessionHandler serves the read-only REST façade used by ops tooling.
type SessionHandler struct {
	sessions *store.SessionStore
	hub      *ws.Hub
	started  time.Time
}

func NewSessionHandler(sessions *store.SessionStore, hub *ws.Hub) *SessionHandler {
	return &SessionHandler{sessions: sessions, hub: hub, started: time.Now()}
}

// Health reports process liveness plus the current session and connection
// counts.
func (h *SessionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "OK",
		"timestamp":      protocol.NowMillis(),
		"uptime":         time.Since(h.started).Seconds(),
		"activeSessions": h.sessions.Count(),
		"connections":    h.hub.Count(),
	})
}

// ListSessions returns a summary of every live session.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions := h.sessions.Summaries()
	c.JSON(http.StatusOK, gin.H{
		"sessions":      sessions,
		"totalSessions": len(sessions),
	})
}

// GetSession returns one session's participant list or 404.
func (h *SessionHandler) GetSession(c *gin.Context) {
	projectID := c.Param("projectId")

	summary, ok := h.sessions.Get(projectID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	participants := h.sessions.Participants(projectID)
	views := make([]models.ParticipantSummary, 0, len(participants))
	for _, p := range participants {
		views = append(views, models.ParticipantSummary{
			ConnectionID: p.ConnectionID,
			UserName:     p.UserName,
			JoinedAt:     p.JoinedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"projectId":        projectID,
		"participants":     views,
		"participantCount": summary.ParticipantCount,
		"created":          summary.Created,
	})
}
