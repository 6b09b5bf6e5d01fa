package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"collab-relay/internal/observability"
	"collab-relay/internal/protocol"
)

// FrameHandler consumes inbound frames and connection teardown. The
// dispatcher implements it.
type FrameHandler interface {
	HandleFrame(c *Client, raw []byte)
	HandleDisconnect(c *Client)
}

// CollabWebSocketHandler upgrades collaboration connections and runs each
// connection's read loop.
type CollabWebSocketHandler struct {
	hub         *Hub
	frames      FrameHandler
	readTimeout time.Duration
}

func NewCollabWebSocketHandler(hub *Hub, frames FrameHandler, readTimeout time.Duration) *CollabWebSocketHandler {
	return &CollabWebSocketHandler{hub: hub, frames: frames, readTimeout: readTimeout}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection, sends the welcome frame and reads frames
// until the peer goes away. No authentication is required to connect.
func (h *CollabWebSocketHandler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("collab-relay/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	client := NewClient(uuid.NewString(), conn, info)
	h.hub.Add(client)

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	h.publishConnEvent(ctx, client, "ws_connect", "")

	client.Send(protocol.NewWelcome(client.ID))

	go h.readLoop(ctx, client, conn)
}

func (h *CollabWebSocketHandler) readLoop(ctx context.Context, client *Client, conn *websocket.Conn) {
	var closeReason string
	defer func() {
		h.frames.HandleDisconnect(client)
		client.Close()
		h.hub.Remove(client.ID)
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		h.publishConnEvent(ctx, client, "ws_disconnect", closeReason)
	}()

	for {
		if h.readTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(h.readTimeout))
		}
		_, raw, err := conn.ReadMessage()
		if err != nil {
			closeReason = err.Error()
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
				h.publishConnEvent(ctx, client, "ws_error", closeReason)
			}
			return
		}
		h.frames.HandleFrame(client, raw)
	}
}

func (h *CollabWebSocketHandler) publishConnEvent(ctx context.Context, client *Client, event, reason string) {
	payload := map[string]interface{}{
		"ws": map[string]interface{}{
			"event":       event,
			"conn_id":     client.ID,
			"duration_ms": time.Since(client.Info.ConnectedAt).Milliseconds(),
			"reason":      reason,
		},
		"identity": map[string]interface{}{
			"device_id": client.Info.DeviceID,
			"ip":        client.Info.IP,
		},
	}

	headers := observability.BuildHeaders(client.Info.RequestID, client.Info.TraceID)
	_ = observability.PublishEvent(ctx, "ws_events.collab", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Payload:   payload,
	}, headers)
}
