package store

import (
	"sync"

	"collab-relay/internal/models"
)

// IdentityStore caches the asserted identity bound to each connection.
// Bindings are advisory: nothing here is verified against Scratch.
type IdentityStore struct {
	mu     sync.RWMutex
	byConn map[string]models.Identity
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{byConn: make(map[string]models.Identity)}
}

func (s *IdentityStore) Bind(identity models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byConn[identity.ConnectionID] = identity
}

func (s *IdentityStore) Get(connectionID string) (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.byConn[connectionID]
	return identity, ok
}

func (s *IdentityStore) Unbind(connectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byConn, connectionID)
}
