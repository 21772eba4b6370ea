// Package notifications serves the viewer's notification feed.
package notifications

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/middleware"
	"github.com/campus-events/portal/internal/relay"
	"github.com/campus-events/portal/pkg/response"
)

// Handler handles notification endpoints.
type Handler struct {
	api    *gateway.Client
	logger *zap.Logger
}

// NewHandler creates a notifications handler.
func NewHandler(api *gateway.Client, logger *zap.Logger) *Handler {
	return &Handler{api: api, logger: logger}
}

// List handles GET /notifications. Only the viewer's own feed is served;
// the unread filter passes through as "true"/"false".
func (h *Handler) List(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)
	params := gateway.NotificationListParams{
		UserID: gateway.Ptr(viewer.ID),
		Limit:  gateway.Ptr(100),
	}
	if c.Query("unread") == "true" {
		params.IsRead = gateway.Ptr(false)
	}
	notifications, err := h.api.ListNotifications(c.Request.Context(), params)
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.OK(c, notifications)
}

// MarkRead handles POST /notifications/:id/read.
func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}
	viewer, _ := middleware.CurrentUser(c)
	notification, err := h.api.GetNotification(c.Request.Context(), id)
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	if notification.UserID != viewer.ID {
		response.Forbidden(c, "not your notification")
		return
	}
	updated, err := h.api.UpdateNotification(c.Request.Context(), id, gateway.NotificationUpdatePayload{
		IsRead: gateway.Ptr(true),
	})
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.OK(c, updated)
}
