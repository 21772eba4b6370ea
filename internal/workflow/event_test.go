package workflow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-events/portal/internal/models"
)

func testEvent(status models.EventStatus) *models.Event {
	return &models.Event{
		ID:        uuid.New(),
		Title:     "Robotics meetup",
		Status:    status,
		CreatorID: uuid.New(),
		CuratorID: uuid.New(),
	}
}

func curator() *models.User {
	return &models.User{ID: uuid.New(), Login: "curator", Role: models.RoleCurator}
}

func admin() *models.User {
	return &models.User{ID: uuid.New(), Login: "admin", Role: models.RoleAdmin}
}

func creatorOf(e *models.Event) *models.User {
	return &models.User{ID: e.CreatorID, Login: "creator", Role: models.RoleStudent}
}

func TestApproveEvent(t *testing.T) {
	event := testEvent(models.EventPending)

	tr, err := ApproveEvent(event, curator())
	require.NoError(t, err)
	assert.Equal(t, models.EventApproved, tr.NewStatus)
	require.NotNil(t, tr.History)
	assert.Equal(t, models.ActionApprove, tr.History.Action)
	assert.Nil(t, tr.History.Comment)
}

func TestApproveEventRoleGate(t *testing.T) {
	event := testEvent(models.EventPending)
	student := &models.User{ID: uuid.New(), Role: models.RoleStudent}

	_, err := ApproveEvent(event, student)
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestRejectEvent(t *testing.T) {
	event := testEvent(models.EventPending)

	tr, err := RejectEvent(event, admin())
	require.NoError(t, err)
	assert.Equal(t, models.EventRejected, tr.NewStatus)
	require.NotNil(t, tr.History)
	assert.Equal(t, models.ActionReject, tr.History.Action)
	assert.Nil(t, tr.History.Comment)
}

func TestRequestEventChanges(t *testing.T) {
	event := testEvent(models.EventPending)

	tr, err := RequestEventChanges(event, curator(), "add agenda")
	require.NoError(t, err)
	assert.Equal(t, models.EventDraft, tr.NewStatus)
	require.NotNil(t, tr.History)
	assert.Equal(t, models.ActionRequestChanges, tr.History.Action)
	require.NotNil(t, tr.History.Comment)
	assert.Equal(t, "add agenda", *tr.History.Comment)
}

func TestRequestEventChangesEmptyComment(t *testing.T) {
	event := testEvent(models.EventPending)

	for _, comment := range []string{"", "   ", "\n\t"} {
		_, err := RequestEventChanges(event, curator(), comment)
		assert.ErrorIs(t, err, ErrCommentRequired)
	}
	// Rejection leaves the record untouched.
	assert.Equal(t, models.EventPending, event.Status)
}

func TestSubmitEvent(t *testing.T) {
	event := testEvent(models.EventDraft)

	tr, err := SubmitEvent(event, creatorOf(event))
	require.NoError(t, err)
	assert.Equal(t, models.EventPending, tr.NewStatus)
	require.NotNil(t, tr.History)
	assert.Equal(t, models.ActionSubmit, tr.History.Action)
}

func TestSubmitEventNotCreator(t *testing.T) {
	event := testEvent(models.EventDraft)

	_, err := SubmitEvent(event, curator())
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestCompleteEvent(t *testing.T) {
	event := testEvent(models.EventApproved)

	tr, err := CompleteEvent(event, curator(), true)
	require.NoError(t, err)
	assert.Equal(t, models.EventCompleted, tr.NewStatus)
	assert.Nil(t, tr.History)
}

func TestCompleteEventByCreator(t *testing.T) {
	event := testEvent(models.EventApproved)

	tr, err := CompleteEvent(event, creatorOf(event), true)
	require.NoError(t, err)
	assert.Equal(t, models.EventCompleted, tr.NewStatus)
}

func TestCompleteEventUnconfirmed(t *testing.T) {
	event := testEvent(models.EventApproved)

	_, err := CompleteEvent(event, curator(), false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
}

// Only the edges of the lifecycle are reachable; everything else is
// rejected regardless of actor.
func TestTransitionLegalityMatrix(t *testing.T) {
	all := []models.EventStatus{
		models.EventDraft, models.EventPending, models.EventApproved,
		models.EventRejected, models.EventCancelled, models.EventCompleted,
	}
	legal := map[string]models.EventStatus{
		"submit":          models.EventDraft,
		"approve":         models.EventPending,
		"reject":          models.EventPending,
		"request_changes": models.EventPending,
		"complete":        models.EventApproved,
	}

	for _, from := range all {
		event := testEvent(from)
		actions := map[string]func() error{
			"submit": func() error {
				_, err := SubmitEvent(event, creatorOf(event))
				return err
			},
			"approve": func() error {
				_, err := ApproveEvent(event, curator())
				return err
			},
			"reject": func() error {
				_, err := RejectEvent(event, curator())
				return err
			},
			"request_changes": func() error {
				_, err := RequestEventChanges(event, curator(), "needs work")
				return err
			},
			"complete": func() error {
				_, err := CompleteEvent(event, curator(), true)
				return err
			},
		}
		for name, invoke := range actions {
			err := invoke()
			if legal[name] == from {
				assert.NoError(t, err, "%s from %s should be legal", name, from)
				continue
			}
			var invalid *InvalidTransitionError
			assert.ErrorAs(t, err, &invalid, "%s from %s should be rejected", name, from)
		}
	}
}

func TestCheckDeleteEvent(t *testing.T) {
	event := testEvent(models.EventPending)

	assert.NoError(t, CheckDeleteEvent(event, curator(), true))
	assert.ErrorIs(t, CheckDeleteEvent(event, curator(), false), ErrConfirmationRequired)

	student := &models.User{ID: uuid.New(), Role: models.RoleStudent}
	assert.ErrorIs(t, CheckDeleteEvent(event, student, true), ErrNotAllowed)

	// A creator may remove only their own draft.
	draft := testEvent(models.EventDraft)
	assert.NoError(t, CheckDeleteEvent(draft, creatorOf(draft), true))
	assert.ErrorIs(t, CheckDeleteEvent(event, creatorOf(event), true), ErrNotAllowed)
}
