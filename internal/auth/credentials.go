package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type ctxKey int

const sessionIDKey ctxKey = iota

// WithSessionID attaches the session id to a request context.
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionID extracts the session id from a context, if present.
func SessionID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(sessionIDKey).(uuid.UUID)
	return id, ok
}

// SessionCredentials adapts the token store to the gateway's credential
// source. The session id travels in the request context, so a single
// instance serves all sessions concurrently.
type SessionCredentials struct {
	store Store
	ttl   time.Duration
}

// NewSessionCredentials creates a context-scoped credential source.
func NewSessionCredentials(store Store, ttl time.Duration) *SessionCredentials {
	return &SessionCredentials{store: store, ttl: ttl}
}

// Token returns the stored campus token for the context's session, or ""
// when the request is anonymous. Reading fresh on every call means a login
// elsewhere in the session takes effect immediately.
func (c *SessionCredentials) Token(ctx context.Context) (string, error) {
	id, ok := SessionID(ctx)
	if !ok {
		return "", nil
	}
	token, err := c.store.Get(ctx, id)
	if errors.Is(err, ErrNoToken) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Invalidate drops the stored token for the context's session. Called by
// the gateway after any upstream 401/403 so every subsequent request in the
// session becomes anonymous until re-login.
func (c *SessionCredentials) Invalidate(ctx context.Context) error {
	id, ok := SessionID(ctx)
	if !ok {
		return nil
	}
	return c.store.Delete(ctx, id)
}

// Save stores a fresh campus token for the context's session.
func (c *SessionCredentials) Save(ctx context.Context, token string) error {
	id, ok := SessionID(ctx)
	if !ok {
		return errors.New("no session on context")
	}
	return c.store.Save(ctx, id, token, c.ttl)
}
