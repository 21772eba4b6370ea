package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSession = errors.New("invalid session")
)

// SessionClaims bind a signed cookie to a server-side session slot. The
// cookie itself carries no campus credential, only the session id.
type SessionClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	jwt.RegisteredClaims
}

// CookieCodec signs and verifies the session cookie value.
type CookieCodec struct {
	secret   []byte
	ttlHours int
}

// NewCookieCodec creates a session cookie codec.
func NewCookieCodec(secret string, ttlHours int) *CookieCodec {
	return &CookieCodec{
		secret:   []byte(secret),
		ttlHours: ttlHours,
	}
}

// TTL returns the session lifetime.
func (c *CookieCodec) TTL() time.Duration {
	return time.Duration(c.ttlHours) * time.Hour
}

// Issue signs a cookie value for the given session id.
func (c *CookieCodec) Issue(sessionID uuid.UUID) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.TTL())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify parses a cookie value and returns the session id it names.
func (c *CookieCodec) Verify(value string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(value, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return c.secret, nil
	})
	if err != nil {
		return uuid.Nil, ErrInvalidSession
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == uuid.Nil {
		return uuid.Nil, ErrInvalidSession
	}
	return claims.SessionID, nil
}
