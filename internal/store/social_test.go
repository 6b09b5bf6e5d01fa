package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRequestAndAcceptCreatesSymmetricEdge(t *testing.T) {
	s := NewSocialStore()

	require.NoError(t, s.AddRequest("alice", "bob"))
	requests := s.Requests("bob")
	require.Len(t, requests, 1)
	assert.Equal(t, "alice", requests[0].From)
	assert.Equal(t, "pending", requests[0].Status)

	require.NoError(t, s.Accept("alice", "bob"))

	// Edge symmetry: both sides or neither.
	assert.True(t, s.AreFriends("alice", "bob"))
	assert.True(t, s.AreFriends("bob", "alice"))
	assert.Empty(t, s.Requests("bob"))
}

func TestAddRequestRejectsDuplicate(t *testing.T) {
	s := NewSocialStore()

	require.NoError(t, s.AddRequest("alice", "bob"))
	err := s.AddRequest("alice", "bob")
	assert.ErrorIs(t, err, ErrRequestPending)

	// Only one pending request per ordered pair, ever.
	assert.Len(t, s.Requests("bob"), 1)

	// The reverse direction is a distinct pair and is allowed.
	require.NoError(t, s.AddRequest("bob", "alice"))
}

func TestAddRequestRejectsExistingFriends(t *testing.T) {
	s := NewSocialStore()
	require.NoError(t, s.AddRequest("alice", "bob"))
	require.NoError(t, s.Accept("alice", "bob"))

	assert.ErrorIs(t, s.AddRequest("alice", "bob"), ErrAlreadyFriends)
	assert.ErrorIs(t, s.AddRequest("bob", "alice"), ErrAlreadyFriends)
}

func TestAcceptUnknownRequest(t *testing.T) {
	s := NewSocialStore()
	assert.ErrorIs(t, s.Accept("alice", "bob"), ErrRequestNotFound)
	assert.False(t, s.AreFriends("alice", "bob"))
}

func TestDeclineRemovesRequestOnly(t *testing.T) {
	s := NewSocialStore()
	require.NoError(t, s.AddRequest("alice", "bob"))

	require.NoError(t, s.Decline("alice", "bob"))
	assert.Empty(t, s.Requests("bob"))
	assert.False(t, s.AreFriends("alice", "bob"))

	assert.ErrorIs(t, s.Decline("alice", "bob"), ErrRequestNotFound)
}

func TestRemoveFriendRemovesBothSides(t *testing.T) {
	s := NewSocialStore()
	require.NoError(t, s.AddRequest("alice", "bob"))
	require.NoError(t, s.Accept("alice", "bob"))

	require.NoError(t, s.RemoveFriend("alice", "bob"))
	assert.False(t, s.AreFriends("alice", "bob"))
	assert.False(t, s.AreFriends("bob", "alice"))
	assert.Empty(t, s.Friends("alice"))
	assert.Empty(t, s.Friends("bob"))
}

func TestRemoveFriendUnknown(t *testing.T) {
	s := NewSocialStore()
	assert.ErrorIs(t, s.RemoveFriend("alice", "bob"), ErrNotFriends)
}

func TestFriendsReturnsSnapshot(t *testing.T) {
	s := NewSocialStore()
	require.NoError(t, s.AddRequest("alice", "bob"))
	require.NoError(t, s.Accept("alice", "bob"))

	friends := s.Friends("alice")
	require.Len(t, friends, 1)
	friends[0].Username = "mutated"

	again := s.Friends("alice")
	assert.Equal(t, "bob", again[0].Username)
}
