package dispatch

import (
	"encoding/json"

	"collab-relay/internal/protocol"
	"collab-relay/internal/ws"
)

func (d *Dispatcher) handleGetNotifications(c *ws.Client, raw []byte) {
	identity, ok := d.requireIdentity(c)
	if !ok {
		return
	}
	notifications, unread := d.notifications.List(identity.Username)
	c.Send(protocol.NewNotificationsList(notifications, unread))
}

func (d *Dispatcher) handleMarkNotificationRead(c *ws.Client, raw []byte) {
	identity, ok := d.requireIdentity(c)
	if !ok {
		return
	}

	var payload protocol.NotificationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}
	if payload.NotificationID == "" {
		c.Send(protocol.NewError(protocol.ErrNotificationIDReq))
		return
	}

	if !d.notifications.MarkRead(identity.Username, payload.NotificationID) {
		c.Send(protocol.NewError(protocol.ErrNotificationMissing))
		return
	}
	c.Send(protocol.NewNotificationMarkedRead(payload.NotificationID))
}

func (d *Dispatcher) handleMarkAllNotificationsRead(c *ws.Client, raw []byte) {
	identity, ok := d.requireIdentity(c)
	if !ok {
		return
	}
	d.notifications.MarkAllRead(identity.Username)
	c.Send(protocol.NewAllNotificationsMarkedRead())
}

func (d *Dispatcher) handleDeleteNotification(c *ws.Client, raw []byte) {
	identity, ok := d.requireIdentity(c)
	if !ok {
		return
	}

	var payload protocol.NotificationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.Send(protocol.NewError(protocol.ErrInvalidFormat))
		return
	}
	if payload.NotificationID == "" {
		c.Send(protocol.NewError(protocol.ErrNotificationIDReq))
		return
	}

	if !d.notifications.Delete(identity.Username, payload.NotificationID) {
		c.Send(protocol.NewError(protocol.ErrNotificationMissing))
		return
	}
	c.Send(protocol.NewNotificationDeleted(payload.NotificationID))
}

func (d *Dispatcher) handleClearAllNotifications(c *ws.Client, raw []byte) {
	identity, ok := d.requireIdentity(c)
	if !ok {
		return
	}
	d.notifications.Clear(identity.Username)
	c.Send(protocol.NewAllNotificationsCleared())
}
