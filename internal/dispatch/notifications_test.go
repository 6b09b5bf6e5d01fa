package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationHandlersRequireAuthentication(t *testing.T) {
	fx := newFixture()
	c, fc := fx.connect("c1")

	for _, raw := range []string{
		`{"type":"getNotifications"}`,
		`{"type":"markNotificationRead","notificationId":"n1"}`,
		`{"type":"markAllNotificationsRead"}`,
		`{"type":"deleteNotification","notificationId":"n1"}`,
		`{"type":"clearAllNotifications"}`,
	} {
		fx.frame(c, raw)
		ev := fc.lastOfType(t, "error")
		assert.Equal(t, "Authentication required", ev.Get("message").String(), "frame %s", raw)
	}
}

func TestGetNotifications(t *testing.T) {
	fx := newFixture()
	bob, fc := fx.authedClient("c1", "bob")

	fx.frame(bob, `{"type":"getNotifications"}`)
	ev := fc.lastOfType(t, "notificationsList")
	assert.Len(t, ev.Get("notifications").Array(), 0)
	assert.EqualValues(t, 0, ev.Get("unreadCount").Int())

	fx.notifications.Add("bob", "friendRequest", "Friend request received", "alice wants to be your friend", nil)

	fx.frame(bob, `{"type":"getNotifications"}`)
	ev = fc.lastOfType(t, "notificationsList")
	list := ev.Get("notifications").Array()
	require.Len(t, list, 1)
	assert.Equal(t, "friendRequest", list[0].Get("type").String())
	assert.EqualValues(t, 1, ev.Get("unreadCount").Int())
}

func TestMarkNotificationRead(t *testing.T) {
	fx := newFixture()
	bob, fc := fx.authedClient("c1", "bob")

	n := fx.notifications.Add("bob", "friendRequest", "Friend request received", "alice wants to be your friend", nil)

	fx.frame(bob, `{"type":"markNotificationRead","notificationId":"`+n.ID+`"}`)
	ev := fc.lastOfType(t, "notificationMarkedRead")
	assert.Equal(t, n.ID, ev.Get("notificationId").String())

	notifications, unread := fx.notifications.List("bob")
	require.Len(t, notifications, 1)
	assert.True(t, notifications[0].Read)
	assert.Equal(t, 0, unread)
}

func TestMarkNotificationReadValidation(t *testing.T) {
	fx := newFixture()
	bob, fc := fx.authedClient("c1", "bob")

	fx.frame(bob, `{"type":"markNotificationRead"}`)
	ev := fc.lastOfType(t, "error")
	assert.Equal(t, "Notification ID is required", ev.Get("message").String())

	fx.frame(bob, `{"type":"markNotificationRead","notificationId":"nope"}`)
	ev = fc.lastOfType(t, "error")
	assert.Equal(t, "Notification not found", ev.Get("message").String())
}

func TestMarkAllNotificationsReadAlwaysAcks(t *testing.T) {
	fx := newFixture()
	bob, fc := fx.authedClient("c1", "bob")

	// Acks even with nothing queued.
	fx.frame(bob, `{"type":"markAllNotificationsRead"}`)
	fc.lastOfType(t, "allNotificationsMarkedRead")

	fx.notifications.Add("bob", "friendRequest", "t", "m", nil)
	fx.notifications.Add("bob", "friendAccepted", "t", "m", nil)

	fx.frame(bob, `{"type":"markAllNotificationsRead"}`)
	fc.lastOfType(t, "allNotificationsMarkedRead")

	_, unread := fx.notifications.List("bob")
	assert.Equal(t, 0, unread)
}

func TestDeleteNotification(t *testing.T) {
	fx := newFixture()
	bob, fc := fx.authedClient("c1", "bob")

	n := fx.notifications.Add("bob", "friendRequest", "t", "m", nil)

	fx.frame(bob, `{"type":"deleteNotification","notificationId":"`+n.ID+`"}`)
	ev := fc.lastOfType(t, "notificationDeleted")
	assert.Equal(t, n.ID, ev.Get("notificationId").String())

	notifications, _ := fx.notifications.List("bob")
	assert.Empty(t, notifications)

	fx.frame(bob, `{"type":"deleteNotification","notificationId":"`+n.ID+`"}`)
	errEv := fc.lastOfType(t, "error")
	assert.Equal(t, "Notification not found", errEv.Get("message").String())
}

func TestClearAllNotifications(t *testing.T) {
	fx := newFixture()
	bob, fc := fx.authedClient("c1", "bob")

	fx.notifications.Add("bob", "friendRequest", "t", "m", nil)
	fx.notifications.Add("bob", "friendAccepted", "t", "m", nil)

	fx.frame(bob, `{"type":"clearAllNotifications"}`)
	fc.lastOfType(t, "allNotificationsCleared")

	notifications, unread := fx.notifications.List("bob")
	assert.Empty(t, notifications)
	assert.Equal(t, 0, unread)
}
