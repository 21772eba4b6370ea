package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/auth"
	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/models"
	"github.com/campus-events/portal/pkg/response"
)

const (
	// ContextUser is the key for the resolved account in gin context.
	ContextUser = "user"
	// ContextUserID is the key for user ID in gin context.
	ContextUserID = "user_id"
	// ContextUserRole is the key for user role in gin context.
	ContextUserRole = "user_role"
)

// Session ensures every request carries a session id: an existing signed
// cookie is verified, anything else gets a fresh session and cookie. The id
// lands on the request context so the credential source can find it.
func Session(codec *auth.CookieCodec, cookieName string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sid uuid.UUID
		if value, err := c.Cookie(cookieName); err == nil {
			if id, err := codec.Verify(value); err == nil {
				sid = id
			}
		}
		if sid == uuid.Nil {
			sid = uuid.New()
			value, err := codec.Issue(sid)
			if err == nil {
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(cookieName, value, int(codec.TTL().Seconds()), "/", "", secure, true)
			}
		}
		c.Request = c.Request.WithContext(auth.WithSessionID(c.Request.Context(), sid))
		c.Next()
	}
}

// RequireUser resolves the session to a campus account and sets it in gin
// context. Anonymous sessions are rejected with 401.
func RequireUser(manager *auth.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := manager.CurrentUser(c.Request.Context())
		if err != nil {
			if errors.Is(err, gateway.ErrUnavailable) {
				response.ServiceUnavailable(c, "campus API is unavailable")
			} else {
				logger.Error("failed to resolve session user", zap.Error(err))
				response.Internal(c, "internal error")
			}
			c.Abort()
			return
		}
		if user == nil {
			response.Unauthorized(c, "not authenticated")
			c.Abort()
			return
		}
		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, string(user.Role))
		c.Next()
	}
}

// CurrentUser returns the account set by RequireUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
