// Package moderation drives the event lifecycle and application decisions
// against the campus API and aggregates the curator console view.
package moderation

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/models"
	"github.com/campus-events/portal/internal/workflow"
)

// Service executes workflow transitions: fetch the current record, run the
// pure transition, persist the new status, then append the audit entry.
// The two writes are not atomic; a failed history write leaves the status
// change in place (same ordering the upstream contract expects).
type Service struct {
	api    *gateway.Client
	logger *zap.Logger
}

// NewService creates a moderation service.
func NewService(api *gateway.Client, logger *zap.Logger) *Service {
	return &Service{api: api, logger: logger}
}

func (s *Service) applyEventTransition(ctx context.Context, actor *models.User, eventID uuid.UUID, t workflow.Transition) (*models.Event, error) {
	updated, err := s.api.UpdateEvent(ctx, eventID, gateway.EventUpdatePayload{Status: &t.NewStatus})
	if err != nil {
		return nil, err
	}
	if t.History != nil {
		if _, err := s.api.CreateEventHistory(ctx, gateway.EventHistoryCreatePayload{
			EventID:   eventID,
			CuratorID: actor.ID,
			Action:    t.History.Action,
			Comment:   t.History.Comment,
		}); err != nil {
			return nil, err
		}
	}
	s.logger.Info("event transition",
		zap.String("event_id", eventID.String()),
		zap.String("actor_id", actor.ID.String()),
		zap.String("status", string(t.NewStatus)))
	return updated, nil
}

// ApproveEvent moves a pending event to approved and logs the decision.
func (s *Service) ApproveEvent(ctx context.Context, actor *models.User, eventID uuid.UUID) (*models.Event, error) {
	event, err := s.api.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	t, err := workflow.ApproveEvent(event, actor)
	if err != nil {
		return nil, err
	}
	return s.applyEventTransition(ctx, actor, eventID, t)
}

// RejectEvent moves a pending event to rejected and logs the decision.
func (s *Service) RejectEvent(ctx context.Context, actor *models.User, eventID uuid.UUID) (*models.Event, error) {
	event, err := s.api.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	t, err := workflow.RejectEvent(event, actor)
	if err != nil {
		return nil, err
	}
	return s.applyEventTransition(ctx, actor, eventID, t)
}

// RequestEventChanges sends a pending event back to draft with the required
// comment. An empty comment aborts before any upstream call is made.
func (s *Service) RequestEventChanges(ctx context.Context, actor *models.User, eventID uuid.UUID, comment string) (*models.Event, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, workflow.ErrCommentRequired
	}
	event, err := s.api.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	t, err := workflow.RequestEventChanges(event, actor, comment)
	if err != nil {
		return nil, err
	}
	return s.applyEventTransition(ctx, actor, eventID, t)
}

// SubmitEvent resubmits a draft to pending on behalf of its creator.
func (s *Service) SubmitEvent(ctx context.Context, actor *models.User, eventID uuid.UUID) (*models.Event, error) {
	event, err := s.api.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	t, err := workflow.SubmitEvent(event, actor)
	if err != nil {
		return nil, err
	}
	return s.applyEventTransition(ctx, actor, eventID, t)
}

// CompleteEvent marks an approved event completed. The confirmation flag is
// checked before anything is fetched.
func (s *Service) CompleteEvent(ctx context.Context, actor *models.User, eventID uuid.UUID, confirmed bool) (*models.Event, error) {
	if !confirmed {
		return nil, workflow.ErrConfirmationRequired
	}
	event, err := s.api.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	t, err := workflow.CompleteEvent(event, actor, confirmed)
	if err != nil {
		return nil, err
	}
	return s.applyEventTransition(ctx, actor, eventID, t)
}

// DeleteEvent removes an event record outright, confirmation-gated.
func (s *Service) DeleteEvent(ctx context.Context, actor *models.User, eventID uuid.UUID, confirmed bool) error {
	if !confirmed {
		return workflow.ErrConfirmationRequired
	}
	event, err := s.api.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := workflow.CheckDeleteEvent(event, actor, confirmed); err != nil {
		return err
	}
	if err := s.api.DeleteEvent(ctx, eventID); err != nil {
		return err
	}
	s.logger.Info("event deleted",
		zap.String("event_id", eventID.String()),
		zap.String("actor_id", actor.ID.String()),
		zap.String("was_status", string(event.Status)))
	return nil
}

// ApproveApplication moves a pending application to approved. Only the
// event's creator or a moderator may decide. No history side effect, and
// no registered_count bookkeeping.
func (s *Service) ApproveApplication(ctx context.Context, actor *models.User, applicationID uuid.UUID) (*models.EventApplication, error) {
	return s.decideApplication(ctx, actor, applicationID, true)
}

// RejectApplication moves a pending application to rejected.
func (s *Service) RejectApplication(ctx context.Context, actor *models.User, applicationID uuid.UUID) (*models.EventApplication, error) {
	return s.decideApplication(ctx, actor, applicationID, false)
}

// loadApplicationForActor fetches the application plus its event and
// verifies the actor may act on it.
func (s *Service) loadApplicationForActor(ctx context.Context, actor *models.User, applicationID uuid.UUID) (*models.EventApplication, error) {
	app, err := s.api.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	event, err := s.api.GetEvent(ctx, app.EventID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CheckApplicationActor(event, actor); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *Service) decideApplication(ctx context.Context, actor *models.User, applicationID uuid.UUID, approve bool) (*models.EventApplication, error) {
	app, err := s.loadApplicationForActor(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}
	status, err := workflow.DecideApplication(app, approve)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateApplication(ctx, applicationID, gateway.ApplicationUpdatePayload{Status: &status})
}

// ReviseApplication sends an application back to its author: status resets
// to pending and the motivation gains the tagged revision note. An empty
// comment aborts before any upstream call.
func (s *Service) ReviseApplication(ctx context.Context, actor *models.User, applicationID uuid.UUID, comment string) (*models.EventApplication, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, workflow.ErrCommentRequired
	}
	app, err := s.loadApplicationForActor(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}
	status, motivation, err := workflow.ReviseApplication(app, comment)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateApplication(ctx, applicationID, gateway.ApplicationUpdatePayload{
		Status:     &status,
		Motivation: &motivation,
	})
}
