// Package auth signs and verifies the anonymous device token that
// identifies a browser to the service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for tokens that fail verification.
var ErrInvalidToken = errors.New("invalid client token")

// ClientTokens issues and validates HS256 device tokens. The subject is the
// client id; there are no other claims.
type ClientTokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewClientTokens creates a token manager.
// secret must be at least 32 characters for HS256 security.
func NewClientTokens(secret, issuer string, ttl time.Duration) *ClientTokens {
	return &ClientTokens{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a token for a new random client id.
func (m *ClientTokens) Issue() (uuid.UUID, string, error) {
	clientID := uuid.New()
	token, err := m.IssueFor(clientID)
	if err != nil {
		return uuid.Nil, "", err
	}
	return clientID, token, nil
}

// IssueFor creates a token for the given client id.
func (m *ClientTokens) IssueFor(clientID uuid.UUID) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   clientID.String(),
		Issuer:    m.issuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign client token: %w", err)
	}
	return signed, nil
}

// Validate parses a token and returns the client id.
func (m *ClientTokens) Validate(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, fmt.Errorf("token is empty: %w", ErrInvalidToken)
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse token: %w: %w", ErrInvalidToken, err)
	}

	clientID, err := uuid.Parse(claims.Subject)
	if err != nil || clientID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid subject: %w", ErrInvalidToken)
	}
	return clientID, nil
}
