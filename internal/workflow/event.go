// Package workflow holds the event moderation state machine and the
// application sub-lifecycle as pure transition logic. Nothing here performs
// I/O: callers hand in the current records and get back either the new
// state plus the audit side effect to persist, or a typed rejection.
package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/campus-events/portal/internal/models"
)

var (
	// ErrCommentRequired rejects a request-changes transition whose comment
	// is empty or cancelled. The abort must leave zero side effects.
	ErrCommentRequired = errors.New("a revision comment is required")
	// ErrConfirmationRequired rejects confirmation-gated actions invoked
	// without the explicit confirmation flag.
	ErrConfirmationRequired = errors.New("explicit confirmation is required")
	// ErrNotAllowed rejects an actor whose role or identity does not permit
	// the transition.
	ErrNotAllowed = errors.New("actor may not perform this transition")
)

// InvalidTransitionError rejects an action that has no edge out of the
// event's current status.
type InvalidTransitionError struct {
	From   models.EventStatus
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s an event in status %q", e.Action, e.From)
}

// HistoryEntry is the audit record a transition appends, written only
// after the status change itself succeeds.
type HistoryEntry struct {
	Action  models.ModerationAction
	Comment *string
}

// Transition is the outcome of a legal event action: the status to write
// and the history entry to append (nil when the action leaves no audit
// trace, as complete does).
type Transition struct {
	NewStatus models.EventStatus
	History   *HistoryEntry
}

// SubmitEvent moves a draft back to pending. Only the creator may resubmit.
func SubmitEvent(event *models.Event, actor *models.User) (Transition, error) {
	if actor.ID != event.CreatorID {
		return Transition{}, ErrNotAllowed
	}
	switch event.Status {
	case models.EventDraft:
		return Transition{
			NewStatus: models.EventPending,
			History:   &HistoryEntry{Action: models.ActionSubmit},
		}, nil
	case models.EventPending, models.EventApproved, models.EventRejected,
		models.EventCancelled, models.EventCompleted:
		return Transition{}, &InvalidTransitionError{From: event.Status, Action: "submit"}
	default:
		return Transition{}, &InvalidTransitionError{From: event.Status, Action: "submit"}
	}
}

// ApproveEvent moves a pending event to approved. Curator/admin only.
func ApproveEvent(event *models.Event, actor *models.User) (Transition, error) {
	if !actor.Role.CanModerate() {
		return Transition{}, ErrNotAllowed
	}
	switch event.Status {
	case models.EventPending:
		return Transition{
			NewStatus: models.EventApproved,
			History:   &HistoryEntry{Action: models.ActionApprove},
		}, nil
	case models.EventDraft, models.EventApproved, models.EventRejected,
		models.EventCancelled, models.EventCompleted:
		return Transition{}, &InvalidTransitionError{From: event.Status, Action: "approve"}
	default:
		return Transition{}, &InvalidTransitionError{From: event.Status, Action: "approve"}
	}
}

// RejectEvent moves a pending event to rejected. Curator/admin only.
func RejectEvent(event *models.Event, actor *models.User) (Transition, error) {
	if !actor.Role.CanModerate() {
		return Transition{}, ErrNotAllowed
	}
	switch event.Status {
	case models.EventPending:
		return Transition{
			NewStatus: models.EventRejected,
			History:   &HistoryEntry{Action: models.ActionReject},
		}, nil
	case models.EventDraft, models.EventApproved, models.EventRejected,
		models.EventCancelled, models.EventCompleted:
		return Transition{}, &InvalidTransitionError{From: event.Status, Action: "reject"}
	default:
		return Transition{}, &InvalidTransitionError{From: event.Status, Action: "reject"}
	}
}

// RequestEventChanges sends a pending event back to its creator as a draft.
// The comment is required; an empty or cancelled comment aborts the whole
// transition before anything is written. This is the only event transition
// that attaches a non-null comment.
func RequestEventChanges(event *models.Event, actor *models.User, comment string) (Transition, error) {
	if !actor.Role.CanModerate() {
		return Transition{}, ErrNotAllowed
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return Transition{}, ErrCommentRequired
	}
	switch event.Status {
	case models.EventPending:
		return Transition{
			NewStatus: models.EventDraft,
			History:   &HistoryEntry{Action: models.ActionRequestChanges, Comment: &comment},
		}, nil
	case models.EventDraft, models.EventApproved, models.EventRejected,
		models.EventCancelled, models.EventCompleted:
		return Transition{}, &InvalidTransitionError{From: event.Status, Action: "request changes for"}
	default:
		return Transition{}, &InvalidTransitionError{From: event.Status, Action: "request changes for"}
	}
}

// CompleteEvent marks an approved event completed. Available to moderators
// and to the event's creator, gated by explicit confirmation. Terminal; no
// history side effect.
func CompleteEvent(event *models.Event, actor *models.User, confirmed bool) (Transition, error) {
	if !actor.Role.CanModerate() && actor.ID != event.CreatorID {
		return Transition{}, ErrNotAllowed
	}
	if !confirmed {
		return Transition{}, ErrConfirmationRequired
	}
	switch event.Status {
	case models.EventApproved:
		return Transition{NewStatus: models.EventCompleted}, nil
	case models.EventDraft, models.EventPending, models.EventRejected,
		models.EventCancelled, models.EventCompleted:
		return Transition{}, &InvalidTransitionError{From: event.Status, Action: "complete"}
	default:
		return Transition{}, &InvalidTransitionError{From: event.Status, Action: "complete"}
	}
}

// CheckDeleteEvent validates a destructive removal. Not a status
// transition: the record is deleted outright. Moderators may delete any
// event; the creator may delete only their own drafts. Confirmation is
// always required.
func CheckDeleteEvent(event *models.Event, actor *models.User, confirmed bool) error {
	if !actor.Role.CanModerate() {
		if actor.ID != event.CreatorID || event.Status != models.EventDraft {
			return ErrNotAllowed
		}
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	return nil
}
