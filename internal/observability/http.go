package observability

import (
	"net"
	"net/http"
	"strings"
)

// Request helpers used when the relay accepts a websocket handshake; the
// values land in the connection's ConnInfo and on outbound event envelopes.

// DeviceIDFromRequest reads the extension-supplied device id, if any.
func DeviceIDFromRequest(r *http.Request) string {
	return r.Header.Get("X-Device-Id")
}

// RequestIDFromRequest reads the correlation id minted by the client or an
// upstream proxy.
func RequestIDFromRequest(r *http.Request) string {
	return r.Header.Get("X-Request-Id")
}

// IPFromRequest resolves the peer address, preferring the first
// X-Forwarded-For hop when the relay sits behind a proxy.
func IPFromRequest(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
