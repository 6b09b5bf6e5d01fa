package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"collab-relay/internal/models"
	"collab-relay/internal/protocol"
)

// maxNotificationsPerUser caps each user's list; the oldest entry is
// evicted on overflow.
const maxNotificationsPerUser = 100

// NotificationStore keeps per-user notification lists, newest first.
type NotificationStore struct {
	mu     sync.Mutex
	byUser map[string][]models.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{byUser: make(map[string][]models.Notification)}
}

// Add prepends a new notification and evicts past the cap.
func (s *NotificationStore) Add(username, notifType, title, message string, data map[string]string) models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := models.Notification{
		ID:        newNotificationID(),
		Type:      notifType,
		Title:     title,
		Message:   message,
		Data:      data,
		Timestamp: protocol.NowMillis(),
	}
	list := append([]models.Notification{n}, s.byUser[username]...)
	if len(list) > maxNotificationsPerUser {
		list = list[:maxNotificationsPerUser]
	}
	s.byUser[username] = list
	return n
}

// List returns a snapshot of the user's notifications and the unread count.
func (s *NotificationStore) List(username string) ([]models.Notification, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]models.Notification, len(s.byUser[username]))
	copy(list, s.byUser[username])
	unread := 0
	for _, n := range list {
		if !n.Read {
			unread++
		}
	}
	return list, unread
}

// MarkRead marks one notification read. Marking an already-read entry
// succeeds again; an unknown id reports false.
func (s *NotificationStore) MarkRead(username, notificationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[username]
	for i := range list {
		if list[i].ID == notificationID {
			list[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead marks every notification read. Always succeeds.
func (s *NotificationStore) MarkAllRead(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[username]
	for i := range list {
		list[i].Read = true
	}
}

// Delete removes one notification; false when the id is unknown.
func (s *NotificationStore) Delete(username, notificationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[username]
	for i := range list {
		if list[i].ID == notificationID {
			s.byUser[username] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Clear replaces the user's list with an empty one.
func (s *NotificationStore) Clear(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[username] = nil
}

func newNotificationID() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("notif_%d", protocol.NowMillis())
	}
	return fmt.Sprintf("notif_%d_%s", protocol.NowMillis(), hex.EncodeToString(buf))
}
