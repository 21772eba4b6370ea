package moderation

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/middleware"
	"github.com/campus-events/portal/internal/models"
	"github.com/campus-events/portal/internal/relay"
	"github.com/campus-events/portal/pkg/response"
)

// CommentRequest carries the required free-text comment for revision
// actions.
type CommentRequest struct {
	Comment string `json:"comment"`
}

// ConfirmRequest carries the explicit confirmation flag for destructive or
// terminal actions.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// Handler handles curator/admin moderation endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a moderation handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func actor(c *gin.Context) *models.User {
	u, _ := middleware.CurrentUser(c)
	return u
}

func eventID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return uuid.Nil, false
	}
	return id, true
}

// Console handles GET /moderation/console.
func (h *Handler) Console(c *gin.Context) {
	console, err := h.service.BuildConsole(c.Request.Context())
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.OK(c, console)
}

// Approve handles POST /moderation/events/:id/approve.
func (h *Handler) Approve(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	event, err := h.service.ApproveEvent(c.Request.Context(), actor(c), id)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.OK(c, event)
}

// Reject handles POST /moderation/events/:id/reject.
func (h *Handler) Reject(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	event, err := h.service.RejectEvent(c.Request.Context(), actor(c), id)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.OK(c, event)
}

// RequestChanges handles POST /moderation/events/:id/request-changes.
func (h *Handler) RequestChanges(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	event, err := h.service.RequestEventChanges(c.Request.Context(), actor(c), id, req.Comment)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.OK(c, event)
}

// Complete handles POST /moderation/events/:id/complete.
func (h *Handler) Complete(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	event, err := h.service.CompleteEvent(c.Request.Context(), actor(c), id, req.Confirm)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.OK(c, event)
}

// Delete handles DELETE /moderation/events/:id. Confirmation travels as
// the "confirm" query parameter since DELETE carries no body.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	confirmed := c.Query("confirm") == "true"
	if err := h.service.DeleteEvent(c.Request.Context(), actor(c), id, confirmed); err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.NoContent(c)
}

// ApproveApplication handles POST /moderation/applications/:id/approve.
func (h *Handler) ApproveApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid application id")
		return
	}
	app, err := h.service.ApproveApplication(c.Request.Context(), actor(c), id)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.OK(c, app)
}

// RejectApplication handles POST /moderation/applications/:id/reject.
func (h *Handler) RejectApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid application id")
		return
	}
	app, err := h.service.RejectApplication(c.Request.Context(), actor(c), id)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.OK(c, app)
}

// ReviseApplication handles POST /moderation/applications/:id/revision.
func (h *Handler) ReviseApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid application id")
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	app, err := h.service.ReviseApplication(c.Request.Context(), actor(c), id, req.Comment)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.OK(c, app)
}
