package repository

import "context"

// Canonical persisted keys for a signed-in session.
const (
	KeyCurrentUser  = "current_user"
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// SessionRecord is the persisted form of a session. User holds the
// serialized user record exactly as stored under KeyCurrentUser.
type SessionRecord struct {
	User         []byte
	AccessToken  string
	RefreshToken string
}

// SessionStore persists the three session keys. Save and Clear are
// all-or-nothing: a reader never observes a subset of the keys.
type SessionStore interface {
	Save(ctx context.Context, rec SessionRecord) error
	// Load reports ok=false when any of the three keys is missing.
	Load(ctx context.Context) (rec SessionRecord, ok bool, err error)
	Clear(ctx context.Context) error
}
