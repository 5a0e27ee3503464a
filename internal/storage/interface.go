package storage

import (
	"context"
	"time"

	"github.com/mcoot/courtside/internal/model"
)

// UserStore persists registered accounts
type UserStore interface {
	// CreateUser inserts the user and assigns its ID.
	// Returns model.ErrUsernameExists if the username is taken.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// SessionStore persists login sessions
type SessionStore interface {
	// SaveSession stores the session; ttl of zero means no store-level expiry
	SaveSession(ctx context.Context, session *model.Session, ttl time.Duration) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
}
