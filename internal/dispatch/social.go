package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"collab-relay/internal/models"
	"collab-relay/internal/protocol"
	"collab-relay/internal/store"
	"collab-relay/internal/ws"
)

const maxUsernameLen = 20

// requireIdentity resolves the caller's bound identity, replying with an
// error frame when the connection never authenticated.
func (d *Dispatcher) requireIdentity(c *ws.Client) (models.Identity, bool) {
	identity, ok := d.identities.Get(c.ID)
	if !ok {
		c.Send(protocol.NewError(protocol.ErrAuthRequired))
		return models.Identity{}, false
	}
	return identity, true
}

// isValidScratchUsername is the superficial existence check: non-empty and
// plausibly short. Nothing is looked up against Scratch.
func isValidScratchUsername(username string) bool {
	return strings.TrimSpace(username) != "" && utf8.RuneCountInString(username) <= maxUsernameLen
}

func (d *Dispatcher) handleAddFriend(c *ws.Client, raw []byte) {
	identity, ok := d.requireIdentity(c)
	if !ok {
		return
	}

	var payload protocol.FriendPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}
	if payload.FriendUsername == "" {
		c.Send(protocol.NewError(protocol.ErrFriendNameRequired))
		return
	}
	if !isValidScratchUsername(payload.FriendUsername) {
		c.Send(protocol.NewError(protocol.ErrUserNotFound(payload.FriendUsername)))
		return
	}

	err := d.social.AddRequest(identity.Username, payload.FriendUsername)
	switch {
	case errors.Is(err, store.ErrAlreadyFriends):
		c.Send(protocol.NewError(protocol.ErrAlreadyFriends(payload.FriendUsername)))
		return
	case errors.Is(err, store.ErrRequestPending):
		c.Send(protocol.NewError(protocol.ErrRequestAlreadySent(payload.FriendUsername)))
		return
	}

	d.notifications.Add(payload.FriendUsername, "friendRequest", "Friend request received",
		fmt.Sprintf("%s wants to be your friend", identity.Username), map[string]string{
			"from": identity.Username,
			"type": "friendRequest",
		})
	d.hub.SendToUser(payload.FriendUsername, protocol.NewFriendRequestReceived(identity.Username, c.Project()))

	c.Send(protocol.NewFriendRequestSent(payload.FriendUsername))
}

func (d *Dispatcher) handleRemoveFriend(c *ws.Client, raw []byte) {
	identity, ok := d.requireIdentity(c)
	if !ok {
		return
	}

	var payload protocol.FriendPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}
	if payload.FriendUsername == "" {
		c.Send(protocol.NewError(protocol.ErrFriendNameRequired))
		return
	}

	if err := d.social.RemoveFriend(identity.Username, payload.FriendUsername); err != nil {
		c.Send(protocol.NewError(protocol.ErrNotInFriendsList(payload.FriendUsername)))
		return
	}
	c.Send(protocol.NewFriendRemoved(payload.FriendUsername))
}

func (d *Dispatcher) handleGetFriends(c *ws.Client, raw []byte) {
	identity, ok := d.requireIdentity(c)
	if !ok {
		return
	}
	c.Send(protocol.NewFriendsList(d.social.Friends(identity.Username)))
}

func (d *Dispatcher) handleGetFriendRequests(c *ws.Client, raw []byte) {
	identity, ok := d.requireIdentity(c)
	if !ok {
		return
	}
	c.Send(protocol.NewFriendRequests(d.social.Requests(identity.Username)))
}

func (d *Dispatcher) handleAcceptFriendRequest(c *ws.Client, raw []byte) {
	identity, ok := d.requireIdentity(c)
	if !ok {
		return
	}

	var payload protocol.RequesterPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}
	if payload.RequesterUsername == "" {
		c.Send(protocol.NewError(protocol.ErrRequesterRequired))
		return
	}

	if err := d.social.Accept(payload.RequesterUsername, identity.Username); err != nil {
		c.Send(protocol.NewError(protocol.ErrRequestNotFound))
		return
	}

	// Both sides learn about the new edge on all their open connections.
	d.hub.SendToUser(payload.RequesterUsername, protocol.NewFriendAdded(identity.Username))
	d.hub.SendToUser(identity.Username, protocol.NewFriendAdded(payload.RequesterUsername))

	d.notifications.Add(payload.RequesterUsername, "friendAccepted", "Friend request accepted",
		fmt.Sprintf("%s accepted your friend request", identity.Username), map[string]string{
			"friendUsername": identity.Username,
			"type":           "friendAccepted",
		})
	d.notifications.Add(identity.Username, "friendAccepted", "Friend request accepted",
		fmt.Sprintf("You accepted %s's friend request", payload.RequesterUsername), map[string]string{
			"friendUsername": payload.RequesterUsername,
			"type":           "friendAccepted",
		})

	c.Send(protocol.NewFriendRequestAccepted(payload.RequesterUsername))
}

func (d *Dispatcher) handleDeclineFriendRequest(c *ws.Client, raw []byte) {
	identity, ok := d.requireIdentity(c)
	if !ok {
		return
	}

	var payload protocol.RequesterPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}
	if payload.RequesterUsername == "" {
		c.Send(protocol.NewError(protocol.ErrRequesterRequired))
		return
	}

	if err := d.social.Decline(payload.RequesterUsername, identity.Username); err != nil {
		c.Send(protocol.NewError(protocol.ErrRequestNotFound))
		return
	}
	c.Send(protocol.NewFriendRequestDeclined(payload.RequesterUsername))
}
