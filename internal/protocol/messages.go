package protocol

import (
	"encoding/json"
	"time"

	"collab-relay/internal/models"
)

// Inbound message type tags. Every frame is a JSON object carrying one of
// these in its "type" field.
const (
	TypeJoin                     = "join"
	TypeAuthenticate             = "authenticate"
	TypeLeave                    = "leave"
	TypeProjectUpdate            = "projectUpdate"
	TypeCursorMove               = "cursorMove"
	TypeChatMessage              = "chatMessage"
	TypePing                     = "ping"
	TypeFriendInvitation         = "friendInvitation"
	TypeAddFriend                = "addFriend"
	TypeRemoveFriend             = "removeFriend"
	TypeGetFriends               = "getFriends"
	TypeGetFriendRequests        = "getFriendRequests"
	TypeAcceptFriendRequest      = "acceptFriendRequest"
	TypeDeclineFriendRequest     = "declineFriendRequest"
	TypeGetNotifications         = "getNotifications"
	TypeMarkNotificationRead     = "markNotificationRead"
	TypeMarkAllNotificationsRead = "markAllNotificationsRead"
	TypeDeleteNotification       = "deleteNotification"
	TypeClearAllNotifications    = "clearAllNotifications"
)

// JoinPayload starts or joins a collaboration session. ScratchAuth, when
// present and logged in, binds the asserted identity inline.
type JoinPayload struct {
	ProjectID   string              `json:"projectId"`
	UserName    string              `json:"userName"`
	ScratchAuth *models.ScratchAuth `json:"scratchAuth"`
}

type AuthenticatePayload struct {
	ScratchAuth *models.ScratchAuth `json:"scratchAuth"`
}

type LeavePayload struct {
	ProjectID string `json:"projectId"`
}

// ProjectUpdatePayload carries an opaque update blob. The relay never
// inspects it.
type ProjectUpdatePayload struct {
	ProjectID  string          `json:"projectId"`
	UpdateData json.RawMessage `json:"updateData"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CursorMovePayload struct {
	ProjectID string   `json:"projectId"`
	Position  Position `json:"position"`
}

type ChatMessagePayload struct {
	ProjectID string `json:"projectId"`
	Message   string `json:"message"`
}

type FriendPayload struct {
	FriendUsername string `json:"friendUsername"`
}

type RequesterPayload struct {
	RequesterUsername string `json:"requesterUsername"`
}

type NotificationPayload struct {
	NotificationID string `json:"notificationId"`
}

// NowMillis is the wire clock: unix milliseconds, matching the extension's
// Date.now() expectations.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
