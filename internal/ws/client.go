package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is the subset of *websocket.Conn the client relies on.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetReadDeadline(t time.Time) error
	Close() error
}

// Client is one live transport connection. It owns the socket; everything
// else refers to it through its ID.
type Client struct {
	ID   string
	Info ConnInfo

	conn Conn

	writeMu sync.Mutex
	closed  bool

	mu          sync.Mutex
	projectID   string
	displayName string
}

func NewClient(id string, conn Conn, info ConnInfo) *Client {
	return &Client{ID: id, Info: info, conn: conn}
}

// Send marshals and writes one frame. Frame writes are serialized because
// the websocket permits a single concurrent writer.
func (c *Client) Send(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.sendRaw(payload)
}

func (c *Client) sendRaw(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed {
		return nil
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		log.Printf("websocket write error: %v", err)
		c.closed = true
		c.conn.Close()
		return err
	}
	return nil
}

// Close shuts the socket; subsequent sends are skipped, not queued.
func (c *Client) Close() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.conn.Close()
}

// SetProject remembers the joined project and the resolved display name.
func (c *Client) SetProject(projectID, displayName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projectID = projectID
	c.displayName = displayName
}

func (c *Client) ClearProject() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projectID = ""
}

func (c *Client) Project() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectID
}

func (c *Client) DisplayName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayName
}
