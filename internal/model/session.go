package model

import (
	"context"
	"time"
)

// SessionUser is the account snapshot kept in a session.
type SessionUser struct {
	ID            int64  `json:"user_id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// Session is the server-side state behind a session cookie.
type Session struct {
	User     *SessionUser `json:"user,omitempty"`
	Token    string       `json:"token,omitempty"`
	LastSeen time.Time    `json:"last_seen"`
}

// Authenticated reports whether a user is attached to the session.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// Clone returns a copy that shares no memory with s.
func (s Session) Clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// SessionStore keeps sessions by id. Get and Update return ErrNotFound for unknown ids.
type SessionStore interface {
	Get(ctx context.Context, id string) (Session, error)
	Set(ctx context.Context, id string, session Session) error
	// Update applies fn to the stored session atomically with respect to other
	// writers of the same id. It never creates a session.
	Update(ctx context.Context, id string, fn func(*Session)) error
	Delete(ctx context.Context, id string) error
}
