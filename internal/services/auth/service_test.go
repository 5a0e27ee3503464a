package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/courtside/internal/dependencies/mocks"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/storage/memory"
	"github.com/mcoot/courtside/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	cfg := DefaultConfig()
	cfg.Secret = "test-secret"
	cfg.BcryptCost = bcrypt.MinCost

	service, err := New(s.storage, s.storage, s.clock, cfg, testutil.NopLogger())
	s.Require().NoError(err)
	s.service = service
	s.ctx = context.Background()
}

func (s *ServiceSuite) userCount() int {
	count, err := s.storage.CountUsers(s.ctx)
	s.Require().NoError(err)
	return count
}

func (s *ServiceSuite) validationFields(err error) map[string]string {
	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	return verr.Fields
}

func (s *ServiceSuite) TestNewRequiresSecret() {
	_, err := New(s.storage, s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ErrorIs(err, ErrMissingSecret)
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	user, err := s.service.Register(s.ctx, "alice", "password123", "password123")
	s.Require().NoError(err)

	s.NotZero(user.ID)
	s.Equal("alice", user.Username)
	s.Equal(s.clock.Now(), user.CreatedAt)
	s.Equal(1, s.userCount())
}

func (s *ServiceSuite) TestRegisterHashesPassword() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "password123")

	stored, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.NotEmpty(stored.PasswordHash)
	s.NotEqual("password123", stored.PasswordHash)
	s.True(VerifyPassword(stored, "password123"))
	s.False(VerifyPassword(stored, "password124"))
}

func (s *ServiceSuite) TestRegisterTrimsUsername() {
	user, err := s.service.Register(s.ctx, "  alice ", "pw", "pw")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
}

func (s *ServiceSuite) TestRegisterDuplicateUsernameFails() {
	_, err := s.service.Register(s.ctx, "alice", "password123", "password123")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "different", "different")
	fields := s.validationFields(err)
	s.Equal("This username is already taken.", fields[FieldUsername])
	s.Equal(1, s.userCount())
}

func (s *ServiceSuite) TestRegisterPasswordMismatchFails() {
	_, err := s.service.Register(s.ctx, "alice", "password123", "password321")
	fields := s.validationFields(err)
	s.Equal("Passwords must match.", fields[FieldPasswordConfirm])
	s.Equal(0, s.userCount())
}

func (s *ServiceSuite) TestRegisterMissingFieldsFail() {
	_, err := s.service.Register(s.ctx, "   ", "", "")
	fields := s.validationFields(err)
	s.Contains(fields, FieldUsername)
	s.Contains(fields, FieldPassword)
	s.Contains(fields, FieldPasswordConfirm)
	s.Equal(0, s.userCount())
}

func (s *ServiceSuite) TestRegisterWhitespacePasswordFails() {
	_, err := s.service.Register(s.ctx, "alice", "   ", " \t ")
	fields := s.validationFields(err)
	s.Equal("This field is required.", fields[FieldPassword])
	s.Equal("This field is required.", fields[FieldPasswordConfirm])
	s.Equal(0, s.userCount())
}

func (s *ServiceSuite) TestValidationErrorMessage() {
	err := &ValidationError{Fields: map[string]string{"password2": "b", "username": "a"}}
	s.Equal("validation failed: password2: b; username: a", err.Error())
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	registered, _ := s.service.Register(s.ctx, "alice", "password123", "password123")

	result, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.NotEmpty(result.Token)
	s.Equal(registered.ID, result.User.ID)
	s.Equal(registered.ID, result.Session.UserID)
	s.Equal(s.clock.Now().Add(24*time.Hour), result.Session.ExpiresAt)

	stored, err := s.storage.GetSession(s.ctx, result.Session.ID)
	s.Require().NoError(err)
	s.Equal(registered.ID, stored.UserID)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "password123")

	_, err := s.service.Login(s.ctx, "alice", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailuresAreIndistinguishable() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "password123")

	_, wrongPassword := s.service.Login(s.ctx, "alice", "nope")
	_, unknownUser := s.service.Login(s.ctx, "bob", "nope")
	s.Equal(wrongPassword.Error(), unknownUser.Error())
}

// ResolveSession tests

func (s *ServiceSuite) TestResolveSessionSucceeds() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "password123")
	result, _ := s.service.Login(s.ctx, "alice", "password123")

	user, err := s.service.ResolveSession(s.ctx, result.Token)
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
}

func (s *ServiceSuite) TestResolveSessionFailsWithGarbageToken() {
	_, err := s.service.ResolveSession(s.ctx, "invalid_token")
	s.ErrorIs(err, ErrInvalidSession)

	_, err = s.service.ResolveSession(s.ctx, "")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestResolveSessionFailsWithForeignSignature() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "password123")
	result, _ := s.service.Login(s.ctx, "alice", "password123")

	cfg := DefaultConfig()
	cfg.Secret = "another-secret"
	other, err := New(s.storage, s.storage, s.clock, cfg, testutil.NopLogger())
	s.Require().NoError(err)

	_, err = other.ResolveSession(s.ctx, result.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestResolveSessionFailsWhenExpired() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "password123")
	result, _ := s.service.Login(s.ctx, "alice", "password123")

	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ResolveSession(s.ctx, result.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestResolveSessionFailsWhenSessionMissing() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "password123")
	result, _ := s.service.Login(s.ctx, "alice", "password123")

	_ = s.storage.DeleteSession(s.ctx, result.Session.ID)

	_, err := s.service.ResolveSession(s.ctx, result.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

// Logout tests

func (s *ServiceSuite) TestLogoutEndsSession() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "password123")
	result, _ := s.service.Login(s.ctx, "alice", "password123")

	s.Require().NoError(s.service.Logout(s.ctx, result.Token))

	_, err := s.service.ResolveSession(s.ctx, result.Token)
	s.ErrorIs(err, ErrInvalidSession)

	_, err = s.storage.GetSession(s.ctx, result.Session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ServiceSuite) TestLogoutIgnoresUnknownToken() {
	s.NoError(s.service.Logout(s.ctx, "unknown_token"))
}
