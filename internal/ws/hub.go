package ws

import (
	"encoding/json"
	"log"
	"sync"

	"collab-relay/internal/observability"
)

// Hub is the connection registry: every live client, plus an index from
// asserted username to that user's connections. Session membership lives in
// the session store; the hub only resolves connection ids to sockets.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client
	byUser     map[string]map[string]*Client
	clientUser map[string]string
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		byUser:     make(map[string]map[string]*Client),
		clientUser: make(map[string]string),
	}
}

// Add registers a freshly accepted connection.
func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Remove deregisters a connection and drops its username binding.
func (h *Hub) Remove(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, clientID)
	if username, ok := h.clientUser[clientID]; ok {
		delete(h.clientUser, clientID)
		if conns, ok := h.byUser[username]; ok {
			delete(conns, clientID)
			if len(conns) == 0 {
				delete(h.byUser, username)
			}
		}
	}
}

// BindUser indexes a connection under its asserted username so social
// events can reach the user's open connections.
func (h *Hub) BindUser(clientID, username string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	if prev, ok := h.clientUser[clientID]; ok && prev != username {
		if conns, ok := h.byUser[prev]; ok {
			delete(conns, clientID)
			if len(conns) == 0 {
				delete(h.byUser, prev)
			}
		}
	}
	h.clientUser[clientID] = username
	if _, ok := h.byUser[username]; !ok {
		h.byUser[username] = make(map[string]*Client)
	}
	h.byUser[username][clientID] = c
}

// Get resolves a connection id to its client.
func (h *Hub) Get(clientID string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[clientID]
	return c, ok
}

// Count returns the number of registered connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends one message to every listed connection except the
// excluded one. Delivery to a closed connection is skipped, never retried.
func (h *Hub) Broadcast(clientIDs []string, excludeID string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(clientIDs))
	for _, id := range clientIDs {
		if id == excludeID {
			continue
		}
		if c, ok := h.clients[id]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.sendRaw(payload); err != nil {
			h.Remove(c.ID)
			observability.IncWSEvent("ws_error")
		}
	}
}

// SendToUser delivers a message to every open connection bound to the
// username. A no-op when the user has none.
func (h *Hub) SendToUser(username string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("send marshal error: %v", err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.byUser[username]))
	for _, c := range h.byUser[username] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.sendRaw(payload); err != nil {
			h.Remove(c.ID)
			observability.IncWSEvent("ws_error")
		}
	}
}

// CloseAll shuts every connection down, used on server shutdown.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.Close()
	}
}
