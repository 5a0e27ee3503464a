package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/courtside/internal/dependencies/clock"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrMissingSecret      = errors.New("session secret is required")
)

// Registration form field names
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password2"
)

// ValidationError reports registration input problems per form field
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Token   string
	Session *model.Session
	User    *model.User
}

// Service handles registration, login and session resolution
type Service struct {
	users    storage.UserStore
	sessions storage.SessionStore
	clock    clock.Clock
	logger   *slog.Logger

	secret          []byte
	sessionDuration time.Duration
	bcryptCost      int
}

// Config holds configuration for the auth service
type Config struct {
	// Secret signs session cookies; must not be empty
	Secret          string
	SessionDuration time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost when zero
	BcryptCost int
}

// DefaultConfig returns default auth configuration without a secret
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(users storage.UserStore, sessions storage.SessionStore, clock clock.Clock, cfg Config, logger *slog.Logger) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		users:           users,
		sessions:        sessions,
		clock:           clock,
		logger:          logger,
		secret:          []byte(cfg.Secret),
		sessionDuration: cfg.SessionDuration,
		bcryptCost:      cfg.BcryptCost,
	}, nil
}

// Register validates the form input and stores a new user.
// It does not log the user in.
func (s *Service) Register(ctx context.Context, username, password, passwordConfirm string) (*model.User, error) {
	username = strings.TrimSpace(username)

	fields := make(map[string]string)
	if username == "" {
		fields[FieldUsername] = "This field is required."
	}
	if strings.TrimSpace(password) == "" {
		fields[FieldPassword] = "This field is required."
	}
	if strings.TrimSpace(passwordConfirm) == "" {
		fields[FieldPasswordConfirm] = "This field is required."
	} else if passwordConfirm != password {
		fields[FieldPasswordConfirm] = "Passwords must match."
	}

	if username != "" {
		_, err := s.users.GetUserByUsername(ctx, username)
		switch {
		case err == nil:
			fields[FieldUsername] = usernameTakenMessage
		case !errors.Is(err, model.ErrUserNotFound):
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration
		if errors.Is(err, model.ErrUsernameExists) {
			return nil, &ValidationError{Fields: map[string]string{FieldUsername: usernameTakenMessage}}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", slog.Int64("user_id", int64(user.ID)))
	return user, nil
}

const usernameTakenMessage = "This username is already taken."

// Login checks the credentials and opens a new session
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			burnHashComparison(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !VerifyPassword(user, password) {
		return nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	session := &model.Session{
		ID:        model.SessionID(uuid.NewString()),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	if err := s.sessions.SaveSession(ctx, session, s.sessionDuration); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	token, err := s.signSessionToken(session)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", slog.Int64("user_id", int64(user.ID)))
	return &LoginResult{Token: token, Session: session, User: user}, nil
}

// Logout ends the session behind the token. Unknown or malformed tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.parseSessionToken(token)
	if err != nil {
		return nil
	}
	return s.sessions.DeleteSession(ctx, claims.sessionID)
}

// ResolveSession returns the user a session token belongs to.
// Returns ErrInvalidSession for any token that does not identify a live session.
func (s *Service) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.parseSessionToken(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.GetSession(ctx, claims.sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.UserID != claims.userID {
		return nil, ErrInvalidSession
	}

	if session.Expired(s.clock.Now()) {
		_ = s.sessions.DeleteSession(ctx, session.ID)
		return nil, ErrInvalidSession
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return user, nil
}

// SessionDuration returns the configured session lifetime
func (s *Service) SessionDuration() time.Duration {
	return s.sessionDuration
}
