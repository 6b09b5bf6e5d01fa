package store

import (
	"sort"
	"sync"

	"collab-relay/internal/models"
	"collab-relay/internal/protocol"
)

// SessionStore owns all live collaboration sessions. A session exists iff
// it has at least one participant; the last leaver deletes it in the same
// call.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*models.Session)}
}

// Join inserts (or replaces) a participant, creating the session on first
// join. It returns the participant count after the insert.
func (s *SessionStore) Join(projectID string, p models.Participant) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[projectID]
	if !ok {
		session = &models.Session{
			ProjectID:    projectID,
			Created:      protocol.NowMillis(),
			Participants: make(map[string]models.Participant),
		}
		s.sessions[projectID] = session
	}
	session.Participants[p.ConnectionID] = p
	return len(session.Participants)
}

// Leave removes the connection's participant. When the session becomes
// empty it is deleted. Returns the removed participant and the remaining
// count; ok is false when the connection was not a member.
func (s *SessionStore) Leave(projectID, connectionID string) (models.Participant, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[projectID]
	if !ok {
		return models.Participant{}, 0, false
	}
	p, ok := session.Participants[connectionID]
	if !ok {
		return models.Participant{}, 0, false
	}
	delete(session.Participants, connectionID)
	remaining := len(session.Participants)
	if remaining == 0 {
		delete(s.sessions, projectID)
	}
	return p, remaining, true
}

// Participants returns a snapshot of a session's participants ordered by
// join time.
func (s *SessionStore) Participants(projectID string) []models.Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[projectID]
	if !ok {
		return nil
	}
	list := make([]models.Participant, 0, len(session.Participants))
	for _, p := range session.Participants {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].JoinedAt != list[j].JoinedAt {
			return list[i].JoinedAt < list[j].JoinedAt
		}
		return list[i].ConnectionID < list[j].ConnectionID
	})
	return list
}

// ParticipantConnIDs returns the connection ids of a session's members.
func (s *SessionStore) ParticipantConnIDs(projectID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[projectID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(session.Participants))
	for id := range session.Participants {
		ids = append(ids, id)
	}
	return ids
}

// Get returns the session creation time and participant count.
func (s *SessionStore) Get(projectID string) (models.SessionSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[projectID]
	if !ok {
		return models.SessionSummary{}, false
	}
	return models.SessionSummary{
		ProjectID:        projectID,
		ParticipantCount: len(session.Participants),
		Created:          session.Created,
	}, true
}

// Summaries lists all live sessions.
func (s *SessionStore) Summaries() []models.SessionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.SessionSummary, 0, len(s.sessions))
	for projectID, session := range s.sessions {
		list = append(list, models.SessionSummary{
			ProjectID:        projectID,
			ParticipantCount: len(session.Participants),
			Created:          session.Created,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProjectID < list[j].ProjectID })
	return list
}

// Count returns the number of live sessions.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
