package models

// Friend is one entry in a user's adjacency list. The relation is
// symmetric: the mirror entry always exists on the other user's list.
type Friend struct {
	Username string `json:"username"`
	AddedAt  int64  `json:"addedAt"`
	Status   string `json:"status"`
}

// FriendRequest is a pending request from one user to another. It only
// exists while pending; accept and decline both remove it.
type FriendRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Timestamp int64  `json:"timestamp"`
	Status    string `json:"status"`
}
