package model

import "time"

// UserID is the auto-assigned numeric identifier of a user record
type UserID int64

// User is a registered account
type User struct {
	ID           UserID
	Username     string // unique, immutable
	PasswordHash string // bcrypt hash, never the plaintext
	CreatedAt    time.Time
}

// SessionID is the opaque server-side identifier of a login session
type SessionID string

// Session binds a browser to a user between login and logout
type Session struct {
	ID        SessionID
	UserID    UserID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at the given time
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
