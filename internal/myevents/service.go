// Package myevents serves the creator's dashboard: events they created
// (with revision notes and application buckets) and events they registered
// for.
package myevents

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/models"
	"github.com/campus-events/portal/internal/workflow"
)

const listLimit = 100

// CreatedEvent is one row of the "my created events" list. Drafts carry
// the reconstructed revision notes; gated approved events carry their
// application buckets.
type CreatedEvent struct {
	models.Event
	Room                *models.Room                 `json:"room,omitempty"`
	RevisionNotes       []workflow.RevisionNote      `json:"revision_notes,omitempty"`
	Applications        *workflow.ApplicationBuckets `json:"applications,omitempty"`
	PendingApplications int                          `json:"pending_applications"`
}

// RegisteredEvent is one row of the "events I attend" list.
type RegisteredEvent struct {
	models.Event
	Room           *models.Room `json:"room,omitempty"`
	RegistrationID uuid.UUID    `json:"registration_id"`
}

// Service aggregates the dashboard views.
type Service struct {
	api    *gateway.Client
	logger *zap.Logger
}

// NewService creates a my-events service.
func NewService(api *gateway.Client, logger *zap.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Created lists the viewer's own events. For each draft, revision notes
// are rebuilt from the denormalized comment plus the request_changes
// history; for each gated approved event, applications are partitioned.
func (s *Service) Created(ctx context.Context, viewer *models.User) ([]CreatedEvent, error) {
	events, err := s.api.ListEvents(ctx, gateway.EventListParams{
		CreatorID: gateway.Ptr(viewer.ID),
		Limit:     gateway.Ptr(listLimit),
	})
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomTable(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CreatedEvent, 0, len(events))
	for i := range events {
		event := events[i]
		row := CreatedEvent{Event: event}
		if event.RoomID != nil {
			row.Room = rooms[*event.RoomID]
		}
		if event.Status == models.EventDraft {
			history, err := s.api.ListEventHistory(ctx, gateway.EventHistoryListParams{
				EventID: gateway.Ptr(event.ID),
				Limit:   gateway.Ptr(listLimit),
			})
			if err != nil {
				return nil, err
			}
			row.RevisionNotes = workflow.RevisionNotes(&event, history)
		}
		if event.NeedApproveCandidates && event.Status == models.EventApproved {
			apps, err := s.api.ListApplications(ctx, gateway.ApplicationListParams{
				EventID: gateway.Ptr(event.ID),
				Limit:   gateway.Ptr(listLimit),
			})
			if err != nil {
				return nil, err
			}
			buckets := workflow.PartitionApplications(event.ID, apps)
			row.Applications = &buckets
			row.PendingApplications = buckets.PendingCount()
		}
		out = append(out, row)
	}
	return out, nil
}

// Registered lists events the viewer holds a registration for.
func (s *Service) Registered(ctx context.Context, viewer *models.User) ([]RegisteredEvent, error) {
	registrations, err := s.api.ListRegistrations(ctx, gateway.RegistrationListParams{
		UserID: gateway.Ptr(viewer.ID),
		Limit:  gateway.Ptr(listLimit),
	})
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomTable(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]RegisteredEvent, 0, len(registrations))
	for i := range registrations {
		reg := registrations[i]
		event, err := s.api.GetEvent(ctx, reg.EventID)
		if err != nil {
			// A registration may outlive its deleted event.
			if apiErr, ok := gateway.AsAPIError(err); ok && apiErr.Status == 404 {
				continue
			}
			return nil, err
		}
		row := RegisteredEvent{Event: *event, RegistrationID: reg.ID}
		if event.RoomID != nil {
			row.Room = rooms[*event.RoomID]
		}
		out = append(out, row)
	}
	return out, nil
}

// CancelRegistration removes the viewer's own registration.
func (s *Service) CancelRegistration(ctx context.Context, viewer *models.User, registrationID uuid.UUID) error {
	reg, err := s.api.GetRegistration(ctx, registrationID)
	if err != nil {
		return err
	}
	if reg.UserID != viewer.ID {
		return workflow.ErrNotAllowed
	}
	return s.api.DeleteRegistration(ctx, registrationID)
}

func (s *Service) roomTable(ctx context.Context) (map[uuid.UUID]*models.Room, error) {
	rooms, err := s.api.ListRooms(ctx, gateway.RoomListParams{Limit: gateway.Ptr(listLimit)})
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.Room, len(rooms))
	for i := range rooms {
		byID[rooms[i].ID] = &rooms[i]
	}
	return byID, nil
}
