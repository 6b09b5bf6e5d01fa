package protocol

import "fmt"

// Error strings sent to clients. The extension matches on these verbatim,
// so they must not be reworded.
const (
	ErrInvalidFormat       = "Invalid message format"
	ErrJoinFieldsRequired  = "Project ID and user name are required"
	ErrInvalidAuthData     = "Invalid authentication data"
	ErrNotJoined           = "Not joined to any project"
	ErrChatNotJoined       = "You must join a project before sending chat messages"
	ErrChatEmpty           = "Message cannot be empty"
	ErrChatTooLong         = "Message too long (max 500 characters)"
	ErrAuthRequired        = "Authentication required"
	ErrFriendNameRequired  = "Friend username is required"
	ErrRequesterRequired   = "Requester username is required"
	ErrRequestNotFound     = "Friend request not found"
	ErrNotificationIDReq   = "Notification ID is required"
	ErrNotificationMissing = "Notification not found"
)

func ErrUnknownType(messageType string) string {
	return fmt.Sprintf("Unknown message type: %s", messageType)
}

func ErrUserNotFound(username string) string {
	return fmt.Sprintf("User '%s' not found on Scratch", username)
}

func ErrAlreadyFriends(username string) string {
	return fmt.Sprintf("You are already friends with %s", username)
}

func ErrRequestAlreadySent(username string) string {
	return fmt.Sprintf("Friend request already sent to %s", username)
}

func ErrNotInFriendsList(username string) string {
	return fmt.Sprintf("%s is not in your friends list", username)
}
