package models

// Notification belongs to exactly one user's list, newest first.
type Notification struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data"`
	Timestamp int64             `json:"timestamp"`
	Read      bool              `json:"read"`
}
