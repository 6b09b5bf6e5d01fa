package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collab-relay/internal/models"
)

func TestIdentityBindAndUnbind(t *testing.T) {
	s := NewIdentityStore()

	_, ok := s.Get("c1")
	require.False(t, ok)

	s.Bind(models.Identity{ConnectionID: "c1", Username: "alice", UserID: 7})
	identity, ok := s.Get("c1")
	require.True(t, ok)
	assert.Equal(t, "alice", identity.Username)
	assert.EqualValues(t, 7, identity.UserID)

	// Rebinding replaces the asserted identity outright.
	s.Bind(models.Identity{ConnectionID: "c1", Username: "mallory"})
	identity, _ = s.Get("c1")
	assert.Equal(t, "mallory", identity.Username)

	s.Unbind("c1")
	_, ok = s.Get("c1")
	assert.False(t, ok)
}
