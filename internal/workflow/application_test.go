package workflow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-events/portal/internal/models"
)

func gatedEvent(max *int, registered int) *models.Event {
	return &models.Event{
		ID:                    uuid.New(),
		Status:                models.EventApproved,
		CreatorID:             uuid.New(),
		NeedApproveCandidates: true,
		MaxParticipants:       max,
		RegisteredCount:       registered,
	}
}

func openEvent(max *int, registered int) *models.Event {
	event := gatedEvent(max, registered)
	event.NeedApproveCandidates = false
	return event
}

func application(eventID, applicantID uuid.UUID, status models.ApplicationStatus) models.EventApplication {
	return models.EventApplication{
		ID:          uuid.New(),
		EventID:     eventID,
		ApplicantID: applicantID,
		Status:      status,
	}
}

func TestCheckApplyDuplicateMessages(t *testing.T) {
	event := gatedEvent(nil, 0)
	applicant := uuid.New()

	tests := []struct {
		status  models.ApplicationStatus
		message string
	}{
		{models.ApplicationPending, "awaiting review"},
		{models.ApplicationApproved, "already been approved"},
		{models.ApplicationRejected, "was rejected"},
	}
	for _, tt := range tests {
		existing := []models.EventApplication{application(event.ID, applicant, tt.status)}
		err := CheckApply(event, applicant, existing)
		block, ok := AsBlock(err)
		require.True(t, ok, "status %s must block", tt.status)
		assert.Contains(t, block.Message, tt.message)
	}
}

func TestCheckApplyOtherEventsIgnored(t *testing.T) {
	event := gatedEvent(nil, 0)
	applicant := uuid.New()
	existing := []models.EventApplication{
		application(uuid.New(), applicant, models.ApplicationPending),
		application(event.ID, uuid.New(), models.ApplicationPending),
	}
	assert.NoError(t, CheckApply(event, applicant, existing))
}

func TestCheckApplyCapacity(t *testing.T) {
	two := 2
	full := gatedEvent(&two, 2)
	err := CheckApply(full, uuid.New(), nil)
	_, ok := AsBlock(err)
	assert.True(t, ok)

	open := gatedEvent(&two, 1)
	assert.NoError(t, CheckApply(open, uuid.New(), nil))

	unlimited := gatedEvent(nil, 9999)
	assert.NoError(t, CheckApply(unlimited, uuid.New(), nil))
}

// Applications only make sense for approved events that actually gate
// participation; anything else blocks before touching the backend.
func TestCheckApplyModeAndStatus(t *testing.T) {
	pending := gatedEvent(nil, 0)
	pending.Status = models.EventPending
	block, ok := AsBlock(CheckApply(pending, uuid.New(), nil))
	require.True(t, ok)
	assert.Contains(t, block.Message, "not open for applications")

	open := openEvent(nil, 0)
	block, ok = AsBlock(CheckApply(open, uuid.New(), nil))
	require.True(t, ok)
	assert.Contains(t, block.Message, "open registration")
}

func TestCheckRegisterModeAndStatus(t *testing.T) {
	draft := openEvent(nil, 0)
	draft.Status = models.EventDraft
	block, ok := AsBlock(CheckRegister(draft, uuid.New(), nil))
	require.True(t, ok)
	assert.Contains(t, block.Message, "not open for registration")

	gated := gatedEvent(nil, 0)
	block, ok = AsBlock(CheckRegister(gated, uuid.New(), nil))
	require.True(t, ok)
	assert.Contains(t, block.Message, "requires an application")
}

func TestCheckRegister(t *testing.T) {
	two := 2
	event := openEvent(&two, 0)
	user := uuid.New()

	assert.NoError(t, CheckRegister(event, user, nil))

	// The creator does not register for their own event.
	err := CheckRegister(event, event.CreatorID, nil)
	_, ok := AsBlock(err)
	assert.True(t, ok)

	// A second registration is blocked locally.
	existing := []models.EventRegistration{{ID: uuid.New(), EventID: event.ID, UserID: user}}
	err = CheckRegister(event, user, existing)
	_, ok = AsBlock(err)
	assert.True(t, ok)
}

// A full event rejects a third registration locally; a null capacity never
// blocks.
func TestCheckRegisterCapacity(t *testing.T) {
	two := 2
	full := openEvent(&two, 2)
	err := CheckRegister(full, uuid.New(), nil)
	block, ok := AsBlock(err)
	require.True(t, ok)
	assert.Contains(t, block.Message, "participant limit")

	unlimited := openEvent(nil, 500)
	assert.NoError(t, CheckRegister(unlimited, uuid.New(), nil))
}

func TestCheckApplicationActor(t *testing.T) {
	event := gatedEvent(nil, 0)

	creator := &models.User{ID: event.CreatorID, Role: models.RoleStudent}
	assert.NoError(t, CheckApplicationActor(event, creator))

	curator := &models.User{ID: uuid.New(), Role: models.RoleCurator}
	assert.NoError(t, CheckApplicationActor(event, curator))

	stranger := &models.User{ID: uuid.New(), Role: models.RoleStudent}
	assert.ErrorIs(t, CheckApplicationActor(event, stranger), ErrNotAllowed)
}

func TestDecideApplication(t *testing.T) {
	app := application(uuid.New(), uuid.New(), models.ApplicationPending)

	status, err := DecideApplication(&app, true)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, status)

	status, err = DecideApplication(&app, false)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, status)

	decided := application(uuid.New(), uuid.New(), models.ApplicationApproved)
	_, err = DecideApplication(&decided, true)
	assert.Error(t, err)
}

func TestReviseApplication(t *testing.T) {
	motivation := "interested"
	app := application(uuid.New(), uuid.New(), models.ApplicationPending)
	app.Motivation = &motivation

	status, updated, err := ReviseApplication(&app, "say more")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, status)
	assert.Equal(t, "interested\n\n[Requires revision] say more", updated)
}

func TestReviseApplicationFromApproved(t *testing.T) {
	app := application(uuid.New(), uuid.New(), models.ApplicationApproved)

	status, updated, err := ReviseApplication(&app, "tighten the plan")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, status)
	assert.Equal(t, "[Requires revision] tighten the plan", updated)
}

func TestReviseApplicationEmptyMotivation(t *testing.T) {
	app := application(uuid.New(), uuid.New(), models.ApplicationPending)

	_, updated, err := ReviseApplication(&app, "add details")
	require.NoError(t, err)
	assert.Equal(t, "[Requires revision] add details", updated)
}

func TestReviseApplicationGuards(t *testing.T) {
	app := application(uuid.New(), uuid.New(), models.ApplicationPending)
	_, _, err := ReviseApplication(&app, "   ")
	assert.ErrorIs(t, err, ErrCommentRequired)

	rejected := application(uuid.New(), uuid.New(), models.ApplicationRejected)
	_, _, err = ReviseApplication(&rejected, "try again")
	assert.Error(t, err)
}
