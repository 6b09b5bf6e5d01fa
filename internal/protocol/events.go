package protocol

import (
	"encoding/json"

	"collab-relay/internal/models"
)

// Outbound events. Each struct serializes to a single JSON frame with a
// fixed "type" tag; constructors fill the tag and timestamp.

type WelcomeEvent struct {
	Type         string `json:"type"`
	ConnectionID string `json:"connectionId"`
	Timestamp    int64  `json:"timestamp"`
}

func NewWelcome(connectionID string) WelcomeEvent {
	return WelcomeEvent{Type: "welcome", ConnectionID: connectionID, Timestamp: NowMillis()}
}

type AuthenticatedEvent struct {
	Type      string `json:"type"`
	Success   bool   `json:"success"`
	Username  string `json:"username,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func NewAuthenticated(success bool, username, message string) AuthenticatedEvent {
	return AuthenticatedEvent{Type: "authenticated", Success: success, Username: username, Message: message, Timestamp: NowMillis()}
}

type JoinedEvent struct {
	Type             string `json:"type"`
	ProjectID        string `json:"projectId"`
	ParticipantCount int    `json:"participantCount"`
	Timestamp        int64  `json:"timestamp"`
}

func NewJoined(projectID string, count int) JoinedEvent {
	return JoinedEvent{Type: "joined", ProjectID: projectID, ParticipantCount: count, Timestamp: NowMillis()}
}

type ParticipantsListEvent struct {
	Type         string               `json:"type"`
	Participants []models.Participant `json:"participants"`
	Timestamp    int64                `json:"timestamp"`
}

func NewParticipantsList(participants []models.Participant) ParticipantsListEvent {
	return ParticipantsListEvent{Type: "participantsList", Participants: participants, Timestamp: NowMillis()}
}

type UserJoinedEvent struct {
	Type             string          `json:"type"`
	UserName         string          `json:"userName"`
	ConnectionID     string          `json:"connectionId"`
	ParticipantCount int             `json:"participantCount"`
	Profile          *models.Profile `json:"profile"`
	Timestamp        int64           `json:"timestamp"`
}

func NewUserJoined(userName, connectionID string, count int, profile *models.Profile) UserJoinedEvent {
	return UserJoinedEvent{Type: "userJoined", UserName: userName, ConnectionID: connectionID, ParticipantCount: count, Profile: profile, Timestamp: NowMillis()}
}

type UserLeftEvent struct {
	Type             string `json:"type"`
	UserName         string `json:"userName"`
	ConnectionID     string `json:"connectionId"`
	ParticipantCount int    `json:"participantCount"`
	Timestamp        int64  `json:"timestamp"`
}

func NewUserLeft(userName, connectionID string, count int) UserLeftEvent {
	return UserLeftEvent{Type: "userLeft", UserName: userName, ConnectionID: connectionID, ParticipantCount: count, Timestamp: NowMillis()}
}

type ProjectUpdateEvent struct {
	Type         string          `json:"type"`
	UserName     string          `json:"userName"`
	ConnectionID string          `json:"connectionId"`
	Data         json.RawMessage `json:"data"`
	Timestamp    int64           `json:"timestamp"`
}

func NewProjectUpdate(userName, connectionID string, data json.RawMessage) ProjectUpdateEvent {
	return ProjectUpdateEvent{Type: "projectUpdate", UserName: userName, ConnectionID: connectionID, Data: data, Timestamp: NowMillis()}
}

type CursorMoveEvent struct {
	Type         string   `json:"type"`
	UserName     string   `json:"userName"`
	ConnectionID string   `json:"connectionId"`
	Position     Position `json:"position"`
	Timestamp    int64    `json:"timestamp"`
}

func NewCursorMove(userName, connectionID string, position Position) CursorMoveEvent {
	return CursorMoveEvent{Type: "cursorMove", UserName: userName, ConnectionID: connectionID, Position: position, Timestamp: NowMillis()}
}

type ChatMessageEvent struct {
	Type         string `json:"type"`
	UserName     string `json:"userName"`
	ConnectionID string `json:"connectionId"`
	Message      string `json:"message"`
	Timestamp    int64  `json:"timestamp"`
}

func NewChatMessage(userName, connectionID, message string) ChatMessageEvent {
	return ChatMessageEvent{Type: "chatMessage", UserName: userName, ConnectionID: connectionID, Message: message, Timestamp: NowMillis()}
}

type PongEvent struct {
	Type string `json:"type"`
}

func NewPong() PongEvent {
	return PongEvent{Type: "pong"}
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(message string) ErrorEvent {
	return ErrorEvent{Type: "error", Message: message}
}

type FriendUsernameEvent struct {
	Type           string `json:"type"`
	FriendUsername string `json:"friendUsername"`
	Timestamp      int64  `json:"timestamp"`
}

func NewFriendRequestSent(friendUsername string) FriendUsernameEvent {
	return FriendUsernameEvent{Type: "friendRequestSent", FriendUsername: friendUsername, Timestamp: NowMillis()}
}

func NewFriendAdded(friendUsername string) FriendUsernameEvent {
	return FriendUsernameEvent{Type: "friendAdded", FriendUsername: friendUsername, Timestamp: NowMillis()}
}

func NewFriendRemoved(friendUsername string) FriendUsernameEvent {
	return FriendUsernameEvent{Type: "friendRemoved", FriendUsername: friendUsername, Timestamp: NowMillis()}
}

func NewFriendRequestAccepted(friendUsername string) FriendUsernameEvent {
	return FriendUsernameEvent{Type: "friendRequestAccepted", FriendUsername: friendUsername, Timestamp: NowMillis()}
}

type FriendRequestReceivedEvent struct {
	Type      string `json:"type"`
	From      string `json:"from"`
	ProjectID string `json:"projectId,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func NewFriendRequestReceived(from, projectID string) FriendRequestReceivedEvent {
	return FriendRequestReceivedEvent{Type: "friendRequestReceived", From: from, ProjectID: projectID, Timestamp: NowMillis()}
}

type FriendRequestDeclinedEvent struct {
	Type              string `json:"type"`
	RequesterUsername string `json:"requesterUsername"`
	Timestamp         int64  `json:"timestamp"`
}

func NewFriendRequestDeclined(requesterUsername string) FriendRequestDeclinedEvent {
	return FriendRequestDeclinedEvent{Type: "friendRequestDeclined", RequesterUsername: requesterUsername, Timestamp: NowMillis()}
}

type FriendsListEvent struct {
	Type      string          `json:"type"`
	Friends   []models.Friend `json:"friends"`
	Timestamp int64           `json:"timestamp"`
}

func NewFriendsList(friends []models.Friend) FriendsListEvent {
	return FriendsListEvent{Type: "friendsList", Friends: friends, Timestamp: NowMillis()}
}

type FriendRequestsEvent struct {
	Type      string                 `json:"type"`
	Requests  []models.FriendRequest `json:"requests"`
	Timestamp int64                  `json:"timestamp"`
}

func NewFriendRequests(requests []models.FriendRequest) FriendRequestsEvent {
	return FriendRequestsEvent{Type: "friendRequests", Requests: requests, Timestamp: NowMillis()}
}

type NotificationsListEvent struct {
	Type          string                `json:"type"`
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
	Timestamp     int64                 `json:"timestamp"`
}

func NewNotificationsList(notifications []models.Notification, unread int) NotificationsListEvent {
	return NotificationsListEvent{Type: "notificationsList", Notifications: notifications, UnreadCount: unread, Timestamp: NowMillis()}
}

type NotificationIDEvent struct {
	Type           string `json:"type"`
	NotificationID string `json:"notificationId"`
	Timestamp      int64  `json:"timestamp"`
}

func NewNotificationMarkedRead(notificationID string) NotificationIDEvent {
	return NotificationIDEvent{Type: "notificationMarkedRead", NotificationID: notificationID, Timestamp: NowMillis()}
}

func NewNotificationDeleted(notificationID string) NotificationIDEvent {
	return NotificationIDEvent{Type: "notificationDeleted", NotificationID: notificationID, Timestamp: NowMillis()}
}

type AckEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

func NewAllNotificationsMarkedRead() AckEvent {
	return AckEvent{Type: "allNotificationsMarkedRead", Timestamp: NowMillis()}
}

func NewAllNotificationsCleared() AckEvent {
	return AckEvent{Type: "allNotificationsCleared", Timestamp: NowMillis()}
}
