package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/models"
	"github.com/campus-events/portal/internal/relay"
	"github.com/campus-events/portal/pkg/response"
)

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Login            string `json:"login" binding:"required"`
	Password         string `json:"password" binding:"required,min=6"`
	Role             string `json:"role"` // optional, defaults to student
	TelegramUsername string `json:"telegram_username"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	manager *Manager
	logger  *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(manager *Manager, logger *zap.Logger) *Handler {
	return &Handler{manager: manager, logger: logger}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.manager.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.OK(c, user)
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	payload := gateway.RegisterPayload{
		Login:    req.Login,
		Password: req.Password,
	}
	if req.Role != "" {
		role := models.UserRole(req.Role)
		switch role {
		case models.RoleAdmin, models.RoleCurator, models.RoleStudent:
			payload.Role = &role
		default:
			response.BadRequest(c, "invalid role")
			return
		}
	}
	if req.TelegramUsername != "" {
		payload.TelegramUsername = &req.TelegramUsername
	}

	user, err := h.manager.Register(c.Request.Context(), payload)
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.Created(c, user)
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.manager.Logout(c.Request.Context()); err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.NoContent(c)
}

// Me handles GET /auth/me.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.manager.CurrentUser(c.Request.Context())
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	if user == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}
	response.OK(c, user)
}
