package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/campus-events/portal/internal/models"
)

// RevisionTag prefixes the revision note appended to an application's
// motivation when it is sent back. Conflating free text with status
// metadata is a known fragile merge, reproduced deliberately to stay
// compatible with records written by earlier clients.
const RevisionTag = "[Requires revision]"

// BlockError rejects a participation attempt before any request is sent
// upstream. Message is user-facing and status-specific.
type BlockError struct {
	Message string
}

func (e *BlockError) Error() string { return e.Message }

// AsBlock unwraps err into a *BlockError if it is one.
func AsBlock(err error) (*BlockError, bool) {
	var blockErr *BlockError
	if errors.As(err, &blockErr) {
		return blockErr, true
	}
	return nil, false
}

// CheckApply guards a new application against a gated event. Blocks unless
// the event is approved and runs in application mode, on an existing
// application with a status-specific message, and on capacity. A block
// means no upstream call is made at all.
func CheckApply(event *models.Event, applicantID uuid.UUID, existing []models.EventApplication) error {
	if event.Status != models.EventApproved {
		return &BlockError{Message: "the event is not open for applications"}
	}
	if !event.NeedApproveCandidates {
		return &BlockError{Message: "this event uses open registration, not applications"}
	}
	for i := range existing {
		app := &existing[i]
		if app.EventID != event.ID || app.ApplicantID != applicantID {
			continue
		}
		switch app.Status {
		case models.ApplicationPending:
			return &BlockError{Message: "you have already applied to this event; your application is awaiting review"}
		case models.ApplicationApproved:
			return &BlockError{Message: "your application has already been approved"}
		case models.ApplicationRejected:
			return &BlockError{Message: "your application was rejected"}
		default:
			return &BlockError{Message: "you have already applied to this event"}
		}
	}
	if event.AtCapacity() {
		return &BlockError{Message: "the event has reached its participant limit"}
	}
	return nil
}

// CheckRegister guards a direct registration for an open event. The event
// must be approved and must not gate participants behind applications. The
// creator does not register for their own event; a prior registration or a
// full event blocks without an upstream call. Nil capacity never blocks.
func CheckRegister(event *models.Event, userID uuid.UUID, existing []models.EventRegistration) error {
	if event.Status != models.EventApproved {
		return &BlockError{Message: "the event is not open for registration"}
	}
	if event.NeedApproveCandidates {
		return &BlockError{Message: "this event requires an application to participate"}
	}
	if event.CreatorID == userID {
		return &BlockError{Message: "you are the creator of this event"}
	}
	if event.AtCapacity() {
		return &BlockError{Message: "the event has reached its participant limit"}
	}
	for i := range existing {
		if existing[i].EventID == event.ID && existing[i].UserID == userID {
			return &BlockError{Message: "you are already registered for this event"}
		}
	}
	return nil
}

// CheckApplicationActor validates who may decide or revise an application
// to the given event: its creator, or a moderator role.
func CheckApplicationActor(event *models.Event, actor *models.User) error {
	if actor.ID == event.CreatorID || actor.Role.CanModerate() {
		return nil
	}
	return ErrNotAllowed
}

// DecideApplication moves a pending application to approved or rejected.
// Creator/curator decision; unlike event transitions there is no history
// side effect. Capacity never gates approval here, a documented defect kept
// for compatibility.
func DecideApplication(app *models.EventApplication, approve bool) (models.ApplicationStatus, error) {
	if app.Status != models.ApplicationPending {
		return "", fmt.Errorf("cannot decide an application in status %q", app.Status)
	}
	if approve {
		return models.ApplicationApproved, nil
	}
	return models.ApplicationRejected, nil
}

// ReviseApplication sends an application back to its author: status resets
// to pending and the motivation gains a tagged revision note, preserving
// prior content. Works from approved or pending. The comment is required.
func ReviseApplication(app *models.EventApplication, comment string) (models.ApplicationStatus, string, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return "", "", ErrCommentRequired
	}
	switch app.Status {
	case models.ApplicationPending, models.ApplicationApproved:
	case models.ApplicationRejected:
		return "", "", fmt.Errorf("cannot revise an application in status %q", app.Status)
	default:
		return "", "", fmt.Errorf("cannot revise an application in status %q", app.Status)
	}

	note := RevisionTag + " " + comment
	motivation := note
	if app.Motivation != nil && *app.Motivation != "" {
		motivation = *app.Motivation + "\n\n" + note
	}
	return models.ApplicationPending, motivation, nil
}
