package events

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/middleware"
	"github.com/campus-events/portal/internal/relay"
	"github.com/campus-events/portal/pkg/response"
)

// CreateRequest is the body for POST /events.
type CreateRequest struct {
	Title                 string  `json:"title" binding:"required"`
	Description           string  `json:"description"`
	EventDate             string  `json:"event_date" binding:"required"`
	StartTime             string  `json:"start_time" binding:"required"`
	EndTime               string  `json:"end_time" binding:"required"`
	MaxParticipants       *int    `json:"max_participants"`
	CuratorID             string  `json:"curator_id" binding:"required,uuid"`
	IsExternalVenue       bool    `json:"is_external_venue"`
	RoomID                *string `json:"room_id"`
	ExternalLocation      *string `json:"external_location"`
	NeedApproveCandidates bool    `json:"need_approve_candidates"`
}

// RegisterRequest is the body for POST /events/:id/register.
type RegisterRequest struct {
	Comment *string `json:"comment"`
}

// ApplyRequest is the body for POST /events/:id/apply.
type ApplyRequest struct {
	Motivation *string `json:"motivation"`
}

// Handler handles public catalog and participation endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Catalog handles GET /events.
func (h *Handler) Catalog(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)
	entries, err := h.service.Catalog(c.Request.Context(), viewer)
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.OK(c, entries)
}

// Curators handles GET /events/curators.
func (h *Handler) Curators(c *gin.Context) {
	curators, err := h.service.Curators(c.Request.Context())
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.OK(c, curators)
}

// Create handles POST /events.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	curatorID, err := uuid.Parse(req.CuratorID)
	if err != nil {
		response.BadRequest(c, "invalid curator id")
		return
	}
	params := CreateParams{
		Title:                 req.Title,
		EventDate:             req.EventDate,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		MaxParticipants:       req.MaxParticipants,
		CuratorID:             curatorID,
		IsExternalVenue:       req.IsExternalVenue,
		ExternalLocation:      req.ExternalLocation,
		NeedApproveCandidates: req.NeedApproveCandidates,
	}
	if req.Description != "" {
		params.Description = &req.Description
	}
	if req.RoomID != nil {
		roomID, err := uuid.Parse(*req.RoomID)
		if err != nil {
			response.BadRequest(c, "invalid room id")
			return
		}
		params.RoomID = &roomID
	}
	if !req.IsExternalVenue && params.RoomID == nil {
		response.BadRequest(c, "either a room or an external location is required")
		return
	}

	viewer, _ := middleware.CurrentUser(c)
	event, err := h.service.Create(c.Request.Context(), viewer, params)
	if err != nil {
		relay.Error(c, h.logger, err)
		return
	}
	response.Created(c, event)
}

// Register handles POST /events/:id/register.
func (h *Handler) Register(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	viewer, _ := middleware.CurrentUser(c)
	registration, err := h.service.Register(c.Request.Context(), viewer, id, req.Comment)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.Created(c, registration)
}

// Apply handles POST /events/:id/apply.
func (h *Handler) Apply(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	viewer, _ := middleware.CurrentUser(c)
	application, err := h.service.Apply(c.Request.Context(), viewer, id, req.Motivation)
	if err != nil {
		relay.WorkflowError(c, h.logger, err)
		return
	}
	response.Created(c, application)
}
