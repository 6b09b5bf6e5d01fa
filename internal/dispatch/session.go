package dispatch

import (
	"encoding/json"
	"log"
	"strings"
	"unicode/utf8"

	"collab-relay/internal/models"
	"collab-relay/internal/observability"
	"collab-relay/internal/protocol"
	"collab-relay/internal/ws"
)

const maxChatMessageLen = 500

func (d *Dispatcher) handleJoin(c *ws.Client, raw []byte) {
	var payload protocol.JoinPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}
	if payload.ProjectID == "" || payload.UserName == "" {
		c.Send(protocol.NewError(protocol.ErrJoinFieldsRequired))
		return
	}

	// The extension may assert identity inline on join. Like authenticate,
	// a fresh assertion replaces any earlier binding.
	if payload.ScratchAuth != nil && payload.ScratchAuth.IsLoggedIn {
		d.bindIdentity(c, *payload.ScratchAuth)
	}

	// Joining project B while joined to A is an implicit leave of A.
	if current := c.Project(); current != "" && current != payload.ProjectID {
		d.leaveProject(c, current)
	}

	displayName := payload.UserName
	var profile *models.Profile
	identity, authenticated := d.identities.Get(c.ID)
	if authenticated {
		displayName = identity.Username
		profile = identity.Profile()
	}

	mu := d.sessionLock(payload.ProjectID)
	mu.Lock()
	defer mu.Unlock()

	participant := models.Participant{
		ConnectionID:    c.ID,
		UserName:        displayName,
		JoinedAt:        protocol.NowMillis(),
		Profile:         profile,
		IsAuthenticated: authenticated,
	}
	count := d.sessions.Join(payload.ProjectID, participant)
	c.SetProject(payload.ProjectID, displayName)
	observability.SetSessionsActive(d.sessions.Count())

	log.Printf("%s joined project %s", displayName, payload.ProjectID)

	// Order matters: peers first, then the full list and the confirmation
	// to the joiner, so it never sees its own join as a peer event.
	connIDs := d.sessions.ParticipantConnIDs(payload.ProjectID)
	d.hub.Broadcast(connIDs, c.ID, protocol.NewUserJoined(displayName, c.ID, count, profile))
	c.Send(protocol.NewParticipantsList(d.sessions.Participants(payload.ProjectID)))
	c.Send(protocol.NewJoined(payload.ProjectID, count))
}

func (d *Dispatcher) handleLeave(c *ws.Client, raw []byte) {
	var payload protocol.LeavePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}

	projectID := payload.ProjectID
	if projectID == "" {
		projectID = c.Project()
	}
	if projectID == "" {
		return
	}
	d.leaveProject(c, projectID)
}

// leaveProject removes the connection from a session, deleting the session
// when it empties and notifying the remaining participants otherwise.
func (d *Dispatcher) leaveProject(c *ws.Client, projectID string) {
	mu := d.sessionLock(projectID)
	mu.Lock()
	defer mu.Unlock()

	participant, remaining, ok := d.sessions.Leave(projectID, c.ID)
	if !ok {
		return
	}
	if c.Project() == projectID {
		c.ClearProject()
	}
	observability.SetSessionsActive(d.sessions.Count())

	log.Printf("%s left project %s", participant.UserName, projectID)

	if remaining > 0 {
		connIDs := d.sessions.ParticipantConnIDs(projectID)
		d.hub.Broadcast(connIDs, "", protocol.NewUserLeft(participant.UserName, c.ID, remaining))
	} else {
		log.Printf("session for project %s removed", projectID)
	}
}

func (d *Dispatcher) handleAuthenticate(c *ws.Client, raw []byte) {
	var payload protocol.AuthenticatePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}

	if payload.ScratchAuth == nil || !payload.ScratchAuth.IsLoggedIn {
		c.Send(protocol.NewAuthenticated(false, "", protocol.ErrInvalidAuthData))
		return
	}

	d.bindIdentity(c, *payload.ScratchAuth)
	log.Printf("user %s authenticated", payload.ScratchAuth.Username)
	c.Send(protocol.NewAuthenticated(true, payload.ScratchAuth.Username, ""))
}

// bindIdentity caches the asserted identity and indexes the connection
// under its username. No verification happens here by design.
func (d *Dispatcher) bindIdentity(c *ws.Client, auth models.ScratchAuth) {
	d.identities.Bind(models.Identity{
		ConnectionID:    c.ID,
		Username:        auth.Username,
		UserID:          auth.UserID,
		Avatar:          auth.Avatar,
		ProfileURL:      auth.ProfileURL,
		AuthenticatedAt: protocol.NowMillis(),
	})
	d.hub.BindUser(c.ID, auth.Username)
}

func (d *Dispatcher) handleProjectUpdate(c *ws.Client, raw []byte) {
	var payload protocol.ProjectUpdatePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}

	projectID := c.Project()
	if projectID == "" {
		c.Send(protocol.NewError(protocol.ErrNotJoined))
		return
	}

	mu := d.sessionLock(projectID)
	mu.Lock()
	defer mu.Unlock()

	connIDs := d.sessions.ParticipantConnIDs(projectID)
	d.hub.Broadcast(connIDs, c.ID, protocol.NewProjectUpdate(c.DisplayName(), c.ID, payload.UpdateData))
}

func (d *Dispatcher) handleCursorMove(c *ws.Client, raw []byte) {
	var payload protocol.CursorMovePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}

	// Cursor noise from an unjoined connection is dropped without an error
	// reply; updates and chat do complain.
	projectID := c.Project()
	if projectID == "" {
		return
	}

	mu := d.sessionLock(projectID)
	mu.Lock()
	defer mu.Unlock()

	connIDs := d.sessions.ParticipantConnIDs(projectID)
	d.hub.Broadcast(connIDs, c.ID, protocol.NewCursorMove(c.DisplayName(), c.ID, payload.Position))
}

func (d *Dispatcher) handleChatMessage(c *ws.Client, raw []byte) {
	var payload protocol.ChatMessagePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}

	projectID := c.Project()
	if projectID == "" {
		c.Send(protocol.NewError(protocol.ErrChatNotJoined))
		return
	}

	trimmed := strings.TrimSpace(payload.Message)
	if trimmed == "" {
		c.Send(protocol.NewError(protocol.ErrChatEmpty))
		return
	}
	if utf8.RuneCountInString(payload.Message) > maxChatMessageLen {
		c.Send(protocol.NewError(protocol.ErrChatTooLong))
		return
	}

	// Chat goes to everyone, sender included, so every client renders the
	// authoritative order of arrival.
	mu := d.sessionLock(projectID)
	mu.Lock()
	defer mu.Unlock()

	connIDs := d.sessions.ParticipantConnIDs(projectID)
	d.hub.Broadcast(connIDs, "", protocol.NewChatMessage(c.DisplayName(), c.ID, trimmed))
}

func (d *Dispatcher) handlePing(c *ws.Client, raw []byte) {
	c.Send(protocol.NewPong())
}
