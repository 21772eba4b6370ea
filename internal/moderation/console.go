package moderation

import (
	"context"

	"github.com/google/uuid"

	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/models"
	"github.com/campus-events/portal/internal/workflow"
)

const listLimit = 100

// EventView is one console row: the event with its references resolved
// locally (the campus API performs no joins), for gated events the
// application buckets with the pending badge, and for drafts the
// reconstructed revision notes.
type EventView struct {
	models.Event
	Room                *models.Room                 `json:"room,omitempty"`
	Creator             *models.User                 `json:"creator,omitempty"`
	Curator             *models.User                 `json:"curator,omitempty"`
	Applications        *workflow.ApplicationBuckets `json:"applications,omitempty"`
	PendingApplications int                          `json:"pending_applications"`
	RevisionNotes       []workflow.RevisionNote      `json:"revision_notes,omitempty"`
}

// Console is the curator/admin view: submitted events bucketed by status.
// Draft rows are events sent back for revision, shown with the reasons.
type Console struct {
	Pending  []EventView `json:"pending"`
	Draft    []EventView `json:"draft"`
	Approved []EventView `json:"approved"`
	Rejected []EventView `json:"rejected"`
}

// BuildConsole fetches events, rooms and users, buckets events by status
// and decorates each gated event with its partitioned applications and
// each draft with its revision notes.
func (s *Service) BuildConsole(ctx context.Context) (*Console, error) {
	events, err := s.api.ListEvents(ctx, gateway.EventListParams{Limit: gateway.Ptr(listLimit)})
	if err != nil {
		return nil, err
	}
	rooms, users, err := s.lookupTables(ctx)
	if err != nil {
		return nil, err
	}

	console := &Console{
		Pending:  []EventView{},
		Draft:    []EventView{},
		Approved: []EventView{},
		Rejected: []EventView{},
	}
	for i := range events {
		event := events[i]
		view, err := s.buildView(ctx, event, rooms, users)
		if err != nil {
			return nil, err
		}
		switch event.Status {
		case models.EventPending:
			console.Pending = append(console.Pending, view)
		case models.EventDraft:
			console.Draft = append(console.Draft, view)
		case models.EventApproved:
			console.Approved = append(console.Approved, view)
		case models.EventRejected:
			console.Rejected = append(console.Rejected, view)
		}
	}
	return console, nil
}

func (s *Service) buildView(ctx context.Context, event models.Event, rooms map[uuid.UUID]*models.Room, users map[uuid.UUID]*models.User) (EventView, error) {
	view := EventView{
		Event:   event,
		Creator: users[event.CreatorID],
		Curator: users[event.CuratorID],
	}
	if event.RoomID != nil {
		view.Room = rooms[*event.RoomID]
	}
	if event.NeedApproveCandidates {
		apps, err := s.api.ListApplications(ctx, gateway.ApplicationListParams{
			EventID: gateway.Ptr(event.ID),
			Limit:   gateway.Ptr(listLimit),
		})
		if err != nil {
			return EventView{}, err
		}
		buckets := workflow.PartitionApplications(event.ID, apps)
		view.Applications = &buckets
		view.PendingApplications = buckets.PendingCount()
	}
	if event.Status == models.EventDraft {
		history, err := s.api.ListEventHistory(ctx, gateway.EventHistoryListParams{
			EventID: gateway.Ptr(event.ID),
			Limit:   gateway.Ptr(listLimit),
		})
		if err != nil {
			return EventView{}, err
		}
		view.RevisionNotes = workflow.RevisionNotes(&event, history)
	}
	return view, nil
}

// lookupTables loads rooms and users once per console build for local
// reference resolution.
func (s *Service) lookupTables(ctx context.Context) (map[uuid.UUID]*models.Room, map[uuid.UUID]*models.User, error) {
	rooms, err := s.api.ListRooms(ctx, gateway.RoomListParams{Limit: gateway.Ptr(listLimit)})
	if err != nil {
		return nil, nil, err
	}
	users, err := s.api.ListUsers(ctx, gateway.UserListParams{Limit: gateway.Ptr(listLimit)})
	if err != nil {
		return nil, nil, err
	}
	roomsByID := make(map[uuid.UUID]*models.Room, len(rooms))
	for i := range rooms {
		roomsByID[rooms[i].ID] = &rooms[i]
	}
	usersByID := make(map[uuid.UUID]*models.User, len(users))
	for i := range users {
		usersByID[users[i].ID] = &users[i]
	}
	return roomsByID, usersByID, nil
}
