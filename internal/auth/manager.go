package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/models"
)

// Manager drives login, registration and session credential lifecycle
// against the campus API.
type Manager struct {
	api    *gateway.Client
	creds  *SessionCredentials
	logger *zap.Logger
}

// NewManager creates an auth manager.
func NewManager(api *gateway.Client, creds *SessionCredentials, logger *zap.Logger) *Manager {
	return &Manager{api: api, creds: creds, logger: logger}
}

// Login exchanges credentials for a campus token, stores it in the session
// slot and returns the account it belongs to.
func (m *Manager) Login(ctx context.Context, login, password string) (*models.User, error) {
	tok, err := m.api.Login(ctx, gateway.LoginPayload{Login: login, Password: password})
	if err != nil {
		return nil, err
	}
	if err := m.creds.Save(ctx, tok.AccessToken); err != nil {
		return nil, err
	}
	user, err := m.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	m.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))
	return user, nil
}

// Register creates a campus account and logs straight into it.
func (m *Manager) Register(ctx context.Context, p gateway.RegisterPayload) (*models.User, error) {
	if _, err := m.api.Register(ctx, p); err != nil {
		return nil, err
	}
	return m.Login(ctx, p.Login, p.Password)
}

// Logout drops the session's campus token. The signed cookie may live on
// but names an empty slot.
func (m *Manager) Logout(ctx context.Context) error {
	return m.creds.Invalidate(ctx)
}

// CurrentUser resolves the session to a campus account. Anonymous sessions
// and sessions whose token the campus API no longer accepts both come back
// as (nil, nil).
func (m *Manager) CurrentUser(ctx context.Context) (*models.User, error) {
	token, err := m.creds.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}
	user, err := m.api.Me(ctx)
	if err != nil {
		if apiErr, ok := gateway.AsAPIError(err); ok && (apiErr.Status == 401 || apiErr.Status == 403) {
			// Token already invalidated by the gateway; treat as anonymous.
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
