package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mcoot/courtside/internal/model"
)

const tokenIssuer = "courtside"

type sessionClaims struct {
	sessionID model.SessionID
	userID    model.UserID
}

// signSessionToken produces the cookie value for a session:
// an HS256 JWT whose jti is the session id and whose sub is the user id
func (s *Service) signSessionToken(session *model.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        string(session.ID),
		Subject:   strconv.FormatInt(int64(session.UserID), 10),
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (s *Service) parseSessionToken(tokenString string) (*sessionClaims, error) {
	if tokenString == "" {
		return nil, errors.New("empty session token")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)

	var claims jwt.RegisteredClaims
	if _, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return nil, err
	}

	if claims.ID == "" {
		return nil, errors.New("session token has no id")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session token has invalid subject: %w", err)
	}

	return &sessionClaims{
		sessionID: model.SessionID(claims.ID),
		userID:    model.UserID(userID),
	}, nil
}
