package myevents

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/middleware"
	"github.com/campus-events/portal/internal/moderation"
	"github.com/campus-events/portal/internal/models"
	"github.com/campus-events/portal/internal/relay"
	"github.com/campus-events/portal/pkg/response"
)

// Handler handles the creator dashboard endpoints. Lifecycle actions
// (resubmit, complete, delete, application decisions) delegate to the
// moderation service, which enforces actor checks.
type Handler struct {
	service    *Service
	moderation *moderation.Service
	logger     *zap.Logger
}

// NewHandler creates a my-events handler.
func NewHandler(service *Service, mod *moderation.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, moderation: mod, logger: logger}
}

func viewer(c *gin.Context) *models.User {
	u, _ := middleware.CurrentUser(c)
	return u
}

// Created handles GET /my-events/created.
func (h *Handler) Created(c *gin.Context) {
	rows, err := h.service.Created(c.Request.Context(), viewer(c))
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.OK(c, rows)
}

// Registered handles GET /my-events/registered.
func (h *Handler) Registered(c *gin.Context) {
	rows, err := h.service.Registered(c.Request.Context(), viewer(c))
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.OK(c, rows)
}

// Submit handles POST /my-events/:id/submit (resubmit a draft).
func (h *Handler) Submit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	event, err := h.moderation.SubmitEvent(c.Request.Context(), viewer(c), id)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.OK(c, event)
}

// Complete handles POST /my-events/:id/complete.
func (h *Handler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req moderation.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	event, err := h.moderation.CompleteEvent(c.Request.Context(), viewer(c), id, req.Confirm)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.OK(c, event)
}

// Delete handles DELETE /my-events/:id (creator deleting their own draft).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	confirmed := c.Query("confirm") == "true"
	if err := h.moderation.DeleteEvent(c.Request.Context(), viewer(c), id, confirmed); err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.NoContent(c)
}

// CancelRegistration handles DELETE /my-events/registrations/:id.
func (h *Handler) CancelRegistration(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	if err := h.service.CancelRegistration(c.Request.Context(), viewer(c), id); err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.NoContent(c)
}

// ApproveApplication handles POST /my-events/applications/:id/approve.
func (h *Handler) ApproveApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid application id")
		return
	}
	app, err := h.moderation.ApproveApplication(c.Request.Context(), viewer(c), id)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.OK(c, app)
}

// RejectApplication handles POST /my-events/applications/:id/reject.
func (h *Handler) RejectApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid application id")
		return
	}
	app, err := h.moderation.RejectApplication(c.Request.Context(), viewer(c), id)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.OK(c, app)
}

// ReviseApplication handles POST /my-events/applications/:id/revision.
func (h *Handler) ReviseApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid application id")
		return
	}
	var req moderation.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	app, err := h.moderation.ReviseApplication(c.Request.Context(), viewer(c), id, req.Comment)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.OK(c, app)
}
