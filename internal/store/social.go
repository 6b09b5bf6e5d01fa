package store

import (
	"errors"
	"sync"

	"collab-relay/internal/models"
	"collab-relay/internal/protocol"
)

var (
	ErrAlreadyFriends  = errors.New("users are already friends")
	ErrRequestPending  = errors.New("friend request already pending")
	ErrRequestNotFound = errors.New("friend request not found")
	ErrNotFriends      = errors.New("not in friends list")
)

// SocialStore holds the friend graph and the pending friend-request
// queues. Friend edges are symmetric: both adjacency entries are written
// and removed under one lock, never independently.
type SocialStore struct {
	mu       sync.Mutex
	friends  map[string][]models.Friend
	requests map[string][]models.FriendRequest
}

func NewSocialStore() *SocialStore {
	return &SocialStore{
		friends:  make(map[string][]models.Friend),
		requests: make(map[string][]models.FriendRequest),
	}
}

// AddRequest enqueues a pending request from one user to another. At most
// one pending request may exist per ordered (from, to) pair.
func (s *SocialStore) AddRequest(from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.areFriendsLocked(from, to) {
		return ErrAlreadyFriends
	}
	for _, req := range s.requests[to] {
		if req.From == from {
			return ErrRequestPending
		}
	}
	s.requests[to] = append(s.requests[to], models.FriendRequest{
		From:      from,
		To:        to,
		Timestamp: protocol.NowMillis(),
		Status:    "pending",
	})
	return nil
}

// Accept removes the pending request and writes the symmetric edge for
// both usernames atomically.
func (s *SocialStore) Accept(requester, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.removeRequestLocked(requester, target) {
		return ErrRequestNotFound
	}
	now := protocol.NowMillis()
	s.friends[requester] = append(s.friends[requester], models.Friend{Username: target, AddedAt: now, Status: "online"})
	s.friends[target] = append(s.friends[target], models.Friend{Username: requester, AddedAt: now, Status: "online"})
	return nil
}

// Decline removes the pending request only.
func (s *SocialStore) Decline(requester, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.removeRequestLocked(requester, target) {
		return ErrRequestNotFound
	}
	return nil
}

// RemoveFriend deletes the edge from both sides. It errors when the caller
// does not list the friend.
func (s *SocialStore) RemoveFriend(username, friendUsername string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.removeEdgeLocked(username, friendUsername) {
		return ErrNotFriends
	}
	s.removeEdgeLocked(friendUsername, username)
	return nil
}

// Friends returns a snapshot of the user's adjacency list.
func (s *SocialStore) Friends(username string) []models.Friend {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]models.Friend, len(s.friends[username]))
	copy(list, s.friends[username])
	return list
}

// Requests returns a snapshot of the user's pending incoming requests.
func (s *SocialStore) Requests(username string) []models.FriendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]models.FriendRequest, len(s.requests[username]))
	copy(list, s.requests[username])
	return list
}

// AreFriends reports whether an edge exists between the two usernames.
func (s *SocialStore) AreFriends(a, b string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.areFriendsLocked(a, b)
}

func (s *SocialStore) areFriendsLocked(a, b string) bool {
	for _, f := range s.friends[a] {
		if f.Username == b {
			return true
		}
	}
	return false
}

func (s *SocialStore) removeRequestLocked(from, to string) bool {
	reqs := s.requests[to]
	for i, req := range reqs {
		if req.From == from {
			s.requests[to] = append(reqs[:i], reqs[i+1:]...)
			return true
		}
	}
	return false
}

func (s *SocialStore) removeEdgeLocked(username, friendUsername string) bool {
	list := s.friends[username]
	for i, f := range list {
		if f.Username == friendUsername {
			s.friends[username] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}
