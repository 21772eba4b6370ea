// Package rooms serves the read-only room catalog.
package rooms

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/relay"
	"github.com/campus-events/portal/pkg/response"
)

// Handler handles room endpoints.
type Handler struct {
	api    *gateway.Client
	logger *zap.Logger
}

// NewHandler creates a rooms handler.
func NewHandler(api *gateway.Client, logger *zap.Logger) *Handler {
	return &Handler{api: api, logger: logger}
}

// List handles GET /rooms. The available filter passes through as
// "true"/"false".
func (h *Handler) List(c *gin.Context) {
	params := gateway.RoomListParams{Limit: gateway.Ptr(100)}
	switch c.Query("available") {
	case "true":
		params.IsAvailable = gateway.Ptr(true)
	case "false":
		params.IsAvailable = gateway.Ptr(false)
	}
	rooms, err := h.api.ListRooms(c.Request.Context(), params)
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.OK(c, rooms)
}

// Get handles GET /rooms/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room id")
		return
	}
	room, err := h.api.GetRoom(c.Request.Context(), id)
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.OK(c, room)
}
