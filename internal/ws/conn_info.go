package ws

import "time"

// ConnInfo carries the ambient metadata captured at upgrade time, used for
// event envelopes and metrics.
type ConnInfo struct {
	DeviceID    string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}
