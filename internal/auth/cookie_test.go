package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieCodecRoundtrip(t *testing.T) {
	codec := NewCookieCodec("roundtrip-secret", 24)
	want := uuid.New()

	value, err := codec.Issue(want)
	require.NoError(t, err)
	require.NotEmpty(t, value)

	got, err := codec.Verify(value)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCookieCodecRejectsGarbage(t *testing.T) {
	codec := NewCookieCodec("roundtrip-secret", 24)

	for _, value := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Verify(value)
		assert.ErrorIs(t, err, ErrInvalidSession, "value %q", value)
	}
}

func TestCookieCodecRejectsWrongSecret(t *testing.T) {
	issuer := NewCookieCodec("secret-one", 24)
	verifier := NewCookieCodec("secret-two", 24)

	value, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(value)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestCookieCodecRejectsNilSessionID(t *testing.T) {
	codec := NewCookieCodec("roundtrip-secret", 24)

	value, err := codec.Issue(uuid.Nil)
	require.NoError(t, err)

	_, err = codec.Verify(value)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

// memoryStore is an in-memory Store for credential tests.
type memoryStore struct {
	tokens  map[uuid.UUID]string
	deletes int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tokens: make(map[uuid.UUID]string)}
}

func (m *memoryStore) Save(_ context.Context, sessionID uuid.UUID, token string, _ time.Duration) error {
	m.tokens[sessionID] = token
	return nil
}

func (m *memoryStore) Get(_ context.Context, sessionID uuid.UUID) (string, error) {
	token, ok := m.tokens[sessionID]
	if !ok {
		return "", ErrNoToken
	}
	return token, nil
}

func (m *memoryStore) Delete(_ context.Context, sessionID uuid.UUID) error {
	delete(m.tokens, sessionID)
	m.deletes++
	return nil
}

func TestSessionCredentialsAnonymousContext(t *testing.T) {
	creds := NewSessionCredentials(newMemoryStore(), time.Hour)

	token, err := creds.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)

	// Invalidating an anonymous request is a no-op, not an error.
	assert.NoError(t, creds.Invalidate(context.Background()))
}

func TestSessionCredentialsSaveAndToken(t *testing.T) {
	store := newMemoryStore()
	creds := NewSessionCredentials(store, time.Hour)
	ctx := WithSessionID(context.Background(), uuid.New())

	require.NoError(t, creds.Save(ctx, "campus-token"))

	token, err := creds.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "campus-token", token)

	// A session with no stored token reads as anonymous.
	other := WithSessionID(context.Background(), uuid.New())
	token, err = creds.Token(other)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSessionCredentialsInvalidate(t *testing.T) {
	store := newMemoryStore()
	creds := NewSessionCredentials(store, time.Hour)
	ctx := WithSessionID(context.Background(), uuid.New())

	require.NoError(t, creds.Save(ctx, "campus-token"))
	require.NoError(t, creds.Invalidate(ctx))
	assert.Equal(t, 1, store.deletes)

	token, err := creds.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSessionCredentialsSaveRequiresSession(t *testing.T) {
	creds := NewSessionCredentials(newMemoryStore(), time.Hour)
	assert.Error(t, creds.Save(context.Background(), "campus-token"))
}
