// Package auth verifies the session credentials issued by the identity provider.
package auth

import (
	"context"
	"fmt"
	"freeform-backend/internal/errs"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims of a session token. Subject holds the user id, ID the jti.
type Claims struct {
	jwt.RegisteredClaims
}

// Session is a verified caller identity
type Session struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}

// RevocationStore remembers signed-out sessions until they would have expired anyway
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type SessionManager struct {
	secret      []byte
	revocations RevocationStore
}

// NewSessionManager builds a verifier for HS256 session tokens.
// revocations may be nil, in which case sign-out is a no-op server side.
func NewSessionManager(secret []byte, revocations RevocationStore) *SessionManager {
	return &SessionManager{secret: secret, revocations: revocations}
}

// Issue signs a session token for userID valid for ttl
func (m *SessionManager) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and checks signature, expiry, subject and revocation
func (m *SessionManager) Verify(ctx context.Context, tokenString string) (*Session, error) {
	if tokenString == "" {
		return nil, errs.ErrUnauthorized
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, errs.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || claims.ID == "" {
		return nil, errs.ErrInvalidToken
	}

	if m.revocations != nil {
		revoked, err := m.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check session revocation: %w", err)
		}
		if revoked {
			return nil, errs.ErrSessionRevoked
		}
	}

	return &Session{
		UserID:    userID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke signs the session out
func (m *SessionManager) Revoke(ctx context.Context, session *Session) error {
	if m.revocations == nil {
		return nil
	}
	return m.revocations.Revoke(ctx, session.TokenID, session.ExpiresAt)
}
