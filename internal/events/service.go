// Package events serves the public event catalog and the participation
// flows: direct registration for open events and applications for gated
// ones.
package events

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/models"
	"github.com/campus-events/portal/internal/workflow"
)

const listLimit = 100

// CatalogEntry is one approved event decorated for the catalog: resolved
// room, category labels, and the viewer's own participation state.
type CatalogEntry struct {
	models.Event
	Room              *models.Room              `json:"room,omitempty"`
	Categories        []models.EventCategory    `json:"categories,omitempty"`
	Registered        bool                      `json:"registered"`
	ApplicationStatus *models.ApplicationStatus `json:"application_status,omitempty"`
}

// Service wraps the catalog and participation flows.
type Service struct {
	api    *gateway.Client
	logger *zap.Logger
}

// NewService creates an events service.
func NewService(api *gateway.Client, logger *zap.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Catalog lists approved events with rooms, category labels and the
// viewer's registration/application state resolved locally.
func (s *Service) Catalog(ctx context.Context, viewer *models.User) ([]CatalogEntry, error) {
	status := models.EventApproved
	events, err := s.api.ListEvents(ctx, gateway.EventListParams{
		Status: &status,
		Limit:  gateway.Ptr(listLimit),
	})
	if err != nil {
		return nil, err
	}
	rooms, err := s.api.ListRooms(ctx, gateway.RoomListParams{Limit: gateway.Ptr(listLimit)})
	if err != nil {
		return nil, err
	}
	categories, err := s.api.ListCategories(ctx, gateway.CategoryListParams{Limit: gateway.Ptr(listLimit)})
	if err != nil {
		return nil, err
	}
	mappings, err := s.api.ListCategoryMappings(ctx, gateway.CategoryMappingListParams{Limit: gateway.Ptr(listLimit)})
	if err != nil {
		return nil, err
	}
	registrations, err := s.api.ListRegistrations(ctx, gateway.RegistrationListParams{
		UserID: gateway.Ptr(viewer.ID),
		Limit:  gateway.Ptr(listLimit),
	})
	if err != nil {
		return nil, err
	}
	applications, err := s.api.ListApplications(ctx, gateway.ApplicationListParams{
		ApplicantID: gateway.Ptr(viewer.ID),
		Limit:       gateway.Ptr(listLimit),
	})
	if err != nil {
		return nil, err
	}

	roomsByID := make(map[uuid.UUID]*models.Room, len(rooms))
	for i := range rooms {
		roomsByID[rooms[i].ID] = &rooms[i]
	}
	categoriesByID := make(map[uuid.UUID]models.EventCategory, len(categories))
	for i := range categories {
		categoriesByID[categories[i].ID] = categories[i]
	}
	categoriesByEvent := make(map[uuid.UUID][]models.EventCategory)
	for i := range mappings {
		if cat, ok := categoriesByID[mappings[i].CategoryID]; ok {
			categoriesByEvent[mappings[i].EventID] = append(categoriesByEvent[mappings[i].EventID], cat)
		}
	}
	registeredEvents := make(map[uuid.UUID]bool, len(registrations))
	for i := range registrations {
		registeredEvents[registrations[i].EventID] = true
	}
	applicationByEvent := make(map[uuid.UUID]models.ApplicationStatus, len(applications))
	for i := range applications {
		applicationByEvent[applications[i].EventID] = applications[i].Status
	}

	entries := make([]CatalogEntry, 0, len(events))
	for i := range events {
		event := events[i]
		entry := CatalogEntry{
			Event:      event,
			Categories: categoriesByEvent[event.ID],
			Registered: registeredEvents[event.ID],
		}
		if event.RoomID != nil {
			entry.Room = roomsByID[*event.RoomID]
		}
		if status, ok := applicationByEvent[event.ID]; ok {
			entry.ApplicationStatus = &status
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// CreateParams carries the creator-facing fields of a new event. Status is
// always pending and event_type student for catalog-created events.
type CreateParams struct {
	Title                 string
	Description           *string
	EventDate             string
	StartTime             string
	EndTime               string
	MaxParticipants       *int
	CuratorID             uuid.UUID
	IsExternalVenue       bool
	RoomID                *uuid.UUID
	ExternalLocation      *string
	NeedApproveCandidates bool
}

// Create submits a new student event straight into moderation.
func (s *Service) Create(ctx context.Context, creator *models.User, p CreateParams) (*models.Event, error) {
	status := models.EventPending
	eventType := models.EventTypeStudent
	payload := gateway.EventCreatePayload{
		Title:                 p.Title,
		Description:           p.Description,
		EventDate:             p.EventDate,
		StartTime:             p.StartTime,
		EndTime:               p.EndTime,
		MaxParticipants:       p.MaxParticipants,
		Status:                &status,
		EventType:             &eventType,
		CreatorID:             creator.ID,
		CuratorID:             p.CuratorID,
		IsExternalVenue:       p.IsExternalVenue,
		NeedApproveCandidates: p.NeedApproveCandidates,
	}
	// Venue is either a room or an external location, never both.
	if p.IsExternalVenue {
		payload.ExternalLocation = p.ExternalLocation
	} else {
		payload.RoomID = p.RoomID
	}
	event, err := s.api.CreateEvent(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("event created",
		zap.String("event_id", event.ID.String()),
		zap.String("creator_id", creator.ID.String()))
	return event, nil
}

// Curators lists users a creator can pick as the event's curator.
func (s *Service) Curators(ctx context.Context) ([]models.User, error) {
	role := models.RoleCurator
	return s.api.ListUsers(ctx, gateway.UserListParams{
		Role:  &role,
		Limit: gateway.Ptr(listLimit),
	})
}

// Register creates a direct registration for an open event. The capacity
// and duplicate guards run against fresh reads and block without issuing
// the mutation.
func (s *Service) Register(ctx context.Context, viewer *models.User, eventID uuid.UUID, comment *string) (*models.EventRegistration, error) {
	event, err := s.api.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	existing, err := s.api.ListRegistrations(ctx, gateway.RegistrationListParams{
		UserID: gateway.Ptr(viewer.ID),
		Limit:  gateway.Ptr(listLimit),
	})
	if err != nil {
		return nil, err
	}
	if err := workflow.CheckRegister(event, viewer.ID, existing); err != nil {
		return nil, err
	}
	return s.api.CreateRegistration(ctx, gateway.RegistrationCreatePayload{
		EventID: eventID,
		UserID:  viewer.ID,
		Comment: comment,
	})
}

// Apply submits an application to a gated event. An existing application
// or a full event blocks with a status-specific message before any
// mutation is sent.
func (s *Service) Apply(ctx context.Context, viewer *models.User, eventID uuid.UUID, motivation *string) (*models.EventApplication, error) {
	event, err := s.api.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	existing, err := s.api.ListApplications(ctx, gateway.ApplicationListParams{
		ApplicantID: gateway.Ptr(viewer.ID),
		Limit:       gateway.Ptr(listLimit),
	})
	if err != nil {
		return nil, err
	}
	if err := workflow.CheckApply(event, viewer.ID, existing); err != nil {
		return nil, err
	}
	status := models.ApplicationPending
	return s.api.CreateApplication(ctx, gateway.ApplicationCreatePayload{
		EventID:     eventID,
		ApplicantID: viewer.ID,
		Status:      &status,
		Motivation:  motivation,
	})
}
