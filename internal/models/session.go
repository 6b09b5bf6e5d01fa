package models

// Participant is one connection's membership record within a Session.
// The ConnectionID is a handle into the hub, never a live socket reference.
type Participant struct {
	ConnectionID    string   `json:"connectionId"`
	UserName        string   `json:"userName"`
	JoinedAt        int64    `json:"joinedAt"`
	Profile         *Profile `json:"profile"`
	IsAuthenticated bool     `json:"isAuthenticated"`
}

// Session is the set of participants collaborating on one project.
type Session struct {
	ProjectID    string                 `json:"projectId"`
	Created      int64                  `json:"created"`
	Participants map[string]Participant `json:"-"`
}

// SessionSummary is the API-friendly view of a session.
type SessionSummary struct {
	ProjectID        string `json:"projectId"`
	ParticipantCount int    `json:"participantCount"`
	Created          int64  `json:"created"`
}

// ParticipantSummary is the reduced participant view exposed over REST.
type ParticipantSummary struct {
	ConnectionID string `json:"connectionId"`
	UserName     string `json:"userName"`
	JoinedAt     int64  `json:"joinedAt"`
}
