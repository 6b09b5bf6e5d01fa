package models

// ScratchAuth is the client-asserted authentication payload. The server
// never verifies it against Scratch; it is trusted as-is.
type ScratchAuth struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	Username   string `json:"username"`
	UserID     int64  `json:"userId"`
	Avatar     string `json:"avatar"`
	ProfileURL string `json:"profileUrl"`
}

// Identity is the advisory binding of a connection to an asserted user.
type Identity struct {
	ConnectionID    string `json:"connectionId"`
	Username        string `json:"username"`
	UserID          int64  `json:"userId"`
	Avatar          string `json:"avatar"`
	ProfileURL      string `json:"profileUrl"`
	AuthenticatedAt int64  `json:"authenticatedAt"`
}

// Profile is the snapshot attached to a participant at join time.
type Profile struct {
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	ProfileURL string `json:"profileUrl"`
}

// Profile copies the display fields of an identity.
func (i Identity) Profile() *Profile {
	return &Profile{
		Username:   i.Username,
		Avatar:     i.Avatar,
		ProfileURL: i.ProfileURL,
	}
}
