package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/models"
)

// CredentialSource supplies the bearer token for each campus API request.
// Token is read fresh per call so a login mid-flight takes effect
// immediately; Invalidate drops the credential after a 401/403.
type CredentialSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) error
}

// Client talks to the campus REST API. All methods take a context and
// return either a decoded response or an error: *APIError for non-2xx
// responses, ErrUnavailable-wrapped for transport failures.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	logger  *zap.Logger
}

// NewClient builds a campus API client. baseURL must not end with a slash.
func NewClient(baseURL string, timeout time.Duration, creds CredentialSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		logger:  logger,
	}
}

// do performs one request. out may be nil for calls that discard the body;
// a 204 or empty body leaves out untouched.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.creds.Token(ctx)
	if err != nil {
		return fmt.Errorf("read credentials: %w", err)
	}
	if token != "" {
		// Stored tokens may already carry the scheme prefix.
		req.Header.Set("Authorization", "Bearer "+strings.TrimPrefix(token, "Bearer "))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// The stored credential is no longer accepted upstream; drop it so
		// the next page load forces a re-login.
		if ierr := c.creds.Invalidate(ctx); ierr != nil {
			c.logger.Warn("failed to invalidate credentials", zap.Error(ierr))
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("campus api error",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return &APIError{
			Status:     resp.StatusCode,
			StatusText: resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// --- auth ---

func (c *Client) Login(ctx context.Context, p LoginPayload) (*TokenPayload, error) {
	var out TokenPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, p RegisterPayload) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the account the current bearer token belongs to.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- users ---

func (c *Client) ListUsers(ctx context.Context, p UserListParams) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, http.MethodGet, "/users", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, p RegisterPayload) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPost, "/users/", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id.String(), nil, nil, nil)
}

// --- rooms ---

func (c *Client) ListRooms(ctx context.Context, p RoomListParams) ([]models.Room, error) {
	var out []models.Room
	if err := c.do(ctx, http.MethodGet, "/rooms", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var out models.Room
	if err := c.do(ctx, http.MethodGet, "/rooms/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRoom(ctx context.Context, p RoomCreatePayload) (*models.Room, error) {
	var out models.Room
	if err := c.do(ctx, http.MethodPost, "/rooms/", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRoom(ctx context.Context, id uuid.UUID, p RoomUpdatePayload) (*models.Room, error) {
	var out models.Room
	if err := c.do(ctx, http.MethodPut, "/rooms/"+id.String(), nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/rooms/"+id.String(), nil, nil, nil)
}

// --- events ---

func (c *Client) ListEvents(ctx context.Context, p EventListParams) ([]models.Event, error) {
	var out []models.Event
	if err := c.do(ctx, http.MethodGet, "/events", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var out models.Event
	if err := c.do(ctx, http.MethodGet, "/events/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEvent(ctx context.Context, p EventCreatePayload) (*models.Event, error) {
	var out models.Event
	if err := c.do(ctx, http.MethodPost, "/events/", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id uuid.UUID, p EventUpdatePayload) (*models.Event, error) {
	var out models.Event
	if err := c.do(ctx, http.MethodPut, "/events/"+id.String(), nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/events/"+id.String(), nil, nil, nil)
}

// --- event applications ---

func (c *Client) ListApplications(ctx context.Context, p ApplicationListParams) ([]models.EventApplication, error) {
	var out []models.EventApplication
	if err := c.do(ctx, http.MethodGet, "/events/applications", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetApplication(ctx context.Context, id uuid.UUID) (*models.EventApplication, error) {
	var out models.EventApplication
	if err := c.do(ctx, http.MethodGet, "/events/applications/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateApplication(ctx context.Context, p ApplicationCreatePayload) (*models.EventApplication, error) {
	var out models.EventApplication
	if err := c.do(ctx, http.MethodPost, "/events/applications", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateApplication(ctx context.Context, id uuid.UUID, p ApplicationUpdatePayload) (*models.EventApplication, error) {
	var out models.EventApplication
	if err := c.do(ctx, http.MethodPut, "/events/applications/"+id.String(), nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/events/applications/"+id.String(), nil, nil, nil)
}

// --- event registrations ---

func (c *Client) ListRegistrations(ctx context.Context, p RegistrationListParams) ([]models.EventRegistration, error) {
	var out []models.EventRegistration
	if err := c.do(ctx, http.MethodGet, "/events/registrations", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRegistration(ctx context.Context, id uuid.UUID) (*models.EventRegistration, error) {
	var out models.EventRegistration
	if err := c.do(ctx, http.MethodGet, "/events/registrations/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRegistration(ctx context.Context, p RegistrationCreatePayload) (*models.EventRegistration, error) {
	var out models.EventRegistration
	if err := c.do(ctx, http.MethodPost, "/events/registrations", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRegistration(ctx context.Context, id uuid.UUID, p RegistrationUpdatePayload) (*models.EventRegistration, error) {
	var out models.EventRegistration
	if err := c.do(ctx, http.MethodPut, "/events/registrations/"+id.String(), nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRegistration(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/events/registrations/"+id.String(), nil, nil, nil)
}

// --- event categories ---

func (c *Client) ListCategories(ctx context.Context, p CategoryListParams) ([]models.EventCategory, error) {
	var out []models.EventCategory
	if err := c.do(ctx, http.MethodGet, "/events/categories", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCategory(ctx context.Context, id uuid.UUID) (*models.EventCategory, error) {
	var out models.EventCategory
	if err := c.do(ctx, http.MethodGet, "/events/categories/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, p CategoryCreatePayload) (*models.EventCategory, error) {
	var out models.EventCategory
	if err := c.do(ctx, http.MethodPost, "/events/categories", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, p CategoryUpdatePayload) (*models.EventCategory, error) {
	var out models.EventCategory
	if err := c.do(ctx, http.MethodPut, "/events/categories/"+id.String(), nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/events/categories/"+id.String(), nil, nil, nil)
}

// --- event category mappings ---

func (c *Client) ListCategoryMappings(ctx context.Context, p CategoryMappingListParams) ([]models.EventCategoryMapping, error) {
	var out []models.EventCategoryMapping
	if err := c.do(ctx, http.MethodGet, "/events/category-mappings", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategoryMapping(ctx context.Context, p CategoryMappingCreatePayload) (*models.EventCategoryMapping, error) {
	var out models.EventCategoryMapping
	if err := c.do(ctx, http.MethodPost, "/events/category-mappings", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategoryMapping(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/events/category-mappings/"+id.String(), nil, nil, nil)
}

// --- notifications ---

func (c *Client) ListNotifications(ctx context.Context, p NotificationListParams) ([]models.Notification, error) {
	var out []models.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var out models.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateNotification(ctx context.Context, p NotificationCreatePayload) (*models.Notification, error) {
	var out models.Notification
	if err := c.do(ctx, http.MethodPost, "/notifications/", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNotification(ctx context.Context, id uuid.UUID, p NotificationUpdatePayload) (*models.Notification, error) {
	var out models.Notification
	if err := c.do(ctx, http.MethodPut, "/notifications/"+id.String(), nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/notifications/"+id.String(), nil, nil, nil)
}

// --- moderation history ---

func (c *Client) ListEventHistory(ctx context.Context, p EventHistoryListParams) ([]models.EventModerationHistory, error) {
	var out []models.EventModerationHistory
	if err := c.do(ctx, http.MethodGet, "/moderation/event-history", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEventHistory(ctx context.Context, p EventHistoryCreatePayload) (*models.EventModerationHistory, error) {
	var out models.EventModerationHistory
	if err := c.do(ctx, http.MethodPost, "/moderation/event-history", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListApplicationHistory(ctx context.Context, p ApplicationHistoryListParams) ([]models.ApplicationHistory, error) {
	var out []models.ApplicationHistory
	if err := c.do(ctx, http.MethodGet, "/moderation/application-history", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateApplicationHistory(ctx context.Context, p ApplicationHistoryCreatePayload) (*models.ApplicationHistory, error) {
	var out models.ApplicationHistory
	if err := c.do(ctx, http.MethodPost, "/moderation/application-history", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
