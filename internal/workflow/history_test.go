package workflow

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-events/portal/internal/models"
)

func historyEntry(eventID uuid.UUID, action models.ModerationAction, comment *string, at time.Time) models.EventModerationHistory {
	return models.EventModerationHistory{
		ID:        uuid.New(),
		EventID:   eventID,
		CuratorID: uuid.New(),
		Action:    action,
		Comment:   comment,
		CreatedAt: at,
	}
}

func TestRevisionNotes(t *testing.T) {
	now := time.Now()
	denorm := "fix the date"
	first := "add agenda"
	second := "name a backup room"
	event := &models.Event{
		ID:                uuid.New(),
		Status:            models.EventDraft,
		ModerationComment: &denorm,
	}
	history := []models.EventModerationHistory{
		// Out of order on purpose; reconstruction sorts by creation time.
		historyEntry(event.ID, models.ActionRequestChanges, &second, now.Add(time.Hour)),
		historyEntry(event.ID, models.ActionRequestChanges, &first, now),
		historyEntry(event.ID, models.ActionApprove, nil, now.Add(2*time.Hour)),
		historyEntry(uuid.New(), models.ActionRequestChanges, &first, now),
	}

	notes := RevisionNotes(event, history)
	require.Len(t, notes, 3)
	// The denormalized comment is unnumbered and may duplicate a history
	// entry; no de-duplication happens.
	assert.Equal(t, RevisionNote{Number: 0, Comment: "fix the date"}, notes[0])
	assert.Equal(t, RevisionNote{Number: 1, Comment: "add agenda"}, notes[1])
	assert.Equal(t, RevisionNote{Number: 2, Comment: "name a backup room"}, notes[2])
}

func TestRevisionNotesNoSources(t *testing.T) {
	event := &models.Event{ID: uuid.New(), Status: models.EventDraft}
	notes := RevisionNotes(event, nil)
	assert.Empty(t, notes)
}

func TestRevisionNotesNilCommentsSkipped(t *testing.T) {
	event := &models.Event{ID: uuid.New(), Status: models.EventDraft}
	history := []models.EventModerationHistory{
		historyEntry(event.ID, models.ActionRequestChanges, nil, time.Now()),
	}
	assert.Empty(t, RevisionNotes(event, history))
}

func TestPartitionApplications(t *testing.T) {
	eventID := uuid.New()
	apps := []models.EventApplication{
		application(eventID, uuid.New(), models.ApplicationPending),
		application(eventID, uuid.New(), models.ApplicationPending),
		application(eventID, uuid.New(), models.ApplicationApproved),
		application(eventID, uuid.New(), models.ApplicationRejected),
		application(uuid.New(), uuid.New(), models.ApplicationPending),
	}

	buckets := PartitionApplications(eventID, apps)
	assert.Equal(t, 2, buckets.PendingCount())
	assert.Len(t, buckets.Approved, 1)
	assert.Len(t, buckets.Rejected, 1)
	// The buckets always account for every application of the event.
	assert.Equal(t, 4, buckets.Total())
}
