package dispatch

import (
	"hash/fnv"
	"sync"

	"github.com/tidwall/gjson"

	"collab-relay/internal/protocol"
	"collab-relay/internal/store"
	"collab-relay/internal/ws"
)

type handlerFunc func(c *ws.Client, raw []byte)

const sessionLockCount = 64

// Dispatcher routes each inbound frame to exactly one handler keyed by the
// frame's "type" tag. Handlers run on the connection's read-loop goroutine,
// so frames from one connection are processed strictly in order.
type Dispatcher struct {
	sessions      *store.SessionStore
	identities    *store.IdentityStore
	social        *store.SocialStore
	notifications *store.NotificationStore
	hub           *ws.Hub

	// sessionLocks serializes each session's fan-outs so every participant
	// observes the same order of events. Striped by project id hash.
	sessionLocks [sessionLockCount]sync.Mutex

	handlers map[string]handlerFunc
}

func New(sessions *store.SessionStore, identities *store.IdentityStore, social *store.SocialStore, notifications *store.NotificationStore, hub *ws.Hub) *Dispatcher {
	d := &Dispatcher{
		sessions:      sessions,
		identities:    identities,
		social:        social,
		notifications: notifications,
		hub:           hub,
	}
	d.handlers = map[string]handlerFunc{
		protocol.TypeJoin:                     d.handleJoin,
		protocol.TypeAuthenticate:             d.handleAuthenticate,
		protocol.TypeLeave:                    d.handleLeave,
		protocol.TypeProjectUpdate:            d.handleProjectUpdate,
		protocol.TypeCursorMove:               d.handleCursorMove,
		protocol.TypeChatMessage:              d.handleChatMessage,
		protocol.TypePing:                     d.handlePing,
		protocol.TypeFriendInvitation:         d.handleAddFriend, // legacy alias
		protocol.TypeAddFriend:                d.handleAddFriend,
		protocol.TypeRemoveFriend:             d.handleRemoveFriend,
		protocol.TypeGetFriends:               d.handleGetFriends,
		protocol.TypeGetFriendRequests:        d.handleGetFriendRequests,
		protocol.TypeAcceptFriendRequest:      d.handleAcceptFriendRequest,
		protocol.TypeDeclineFriendRequest:     d.handleDeclineFriendRequest,
		protocol.TypeGetNotifications:         d.handleGetNotifications,
		protocol.TypeMarkNotificationRead:     d.handleMarkNotificationRead,
		protocol.TypeMarkAllNotificationsRead: d.handleMarkAllNotificationsRead,
		protocol.TypeDeleteNotification:       d.handleDeleteNotification,
		protocol.TypeClearAllNotifications:    d.handleClearAllNotifications,
	}
	return d
}

// sessionLock resolves the stripe guarding a session's fan-outs. Callers
// must not hold one stripe while acquiring another.
func (d *Dispatcher) sessionLock(projectID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(projectID))
	return &d.sessionLocks[h.Sum32()%sessionLockCount]
}

// HandleFrame interprets one inbound frame. A frame that is not valid JSON
// gets an error reply and is otherwise ignored; the connection stays open.
func (d *Dispatcher) HandleFrame(c *ws.Client, raw []byte) {
	if !gjson.ValidBytes(raw) {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}

	messageType := gjson.GetBytes(raw, "type").String()
	handler, ok := d.handlers[messageType]
	if !ok {
		c.Send(protocol.NewError(protocol.ErrUnknownType(messageType)))
		return
	}
	handler(c, raw)
}

// HandleDisconnect runs the implicit leave and unbinds the identity when a
// connection's transport closes.
func (d *Dispatcher) HandleDisconnect(c *ws.Client) {
	if projectID := c.Project(); projectID != "" {
		d.leaveProject(c, projectID)
	}
	d.identities.Unbind(c.ID)
}
