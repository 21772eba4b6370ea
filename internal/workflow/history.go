package workflow

import (
	"sort"

	"github.com/google/uuid"

	"github.com/campus-events/portal/internal/models"
)

// RevisionNote is one line of the "needs revision" explanation shown to an
// event's creator. Number is 0 for the denormalized comment carried on the
// event record itself, 1..n for history entries in creation order.
type RevisionNote struct {
	Number  int    `json:"number"`
	Comment string `json:"comment"`
}

// RevisionNotes reconstructs why an event sits in draft: the event's own
// moderation_comment first (if present), then every request_changes history
// entry with a non-null comment, ordered by creation time and numbered
// sequentially. Both sources may repeat the same text; duplication is
// accepted, not collapsed.
func RevisionNotes(event *models.Event, history []models.EventModerationHistory) []RevisionNote {
	notes := make([]RevisionNote, 0, len(history)+1)
	if event.ModerationComment != nil && *event.ModerationComment != "" {
		notes = append(notes, RevisionNote{Number: 0, Comment: *event.ModerationComment})
	}

	entries := make([]models.EventModerationHistory, 0, len(history))
	for i := range history {
		h := &history[i]
		if h.EventID == event.ID && h.Action == models.ActionRequestChanges && h.Comment != nil && *h.Comment != "" {
			entries = append(entries, *h)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	for i := range entries {
		notes = append(notes, RevisionNote{Number: i + 1, Comment: *entries[i].Comment})
	}
	return notes
}

// ApplicationBuckets partitions one event's applications by status. The
// bucket sizes always sum to the input size for that event.
type ApplicationBuckets struct {
	Pending  []models.EventApplication `json:"pending"`
	Approved []models.EventApplication `json:"approved"`
	Rejected []models.EventApplication `json:"rejected"`
}

// PendingCount is the badge value for the moderation console.
func (b *ApplicationBuckets) PendingCount() int { return len(b.Pending) }

// Total is the full application count across all statuses.
func (b *ApplicationBuckets) Total() int {
	return len(b.Pending) + len(b.Approved) + len(b.Rejected)
}

// PartitionApplications splits applications for one event by status.
// Entries for other events are ignored.
func PartitionApplications(eventID uuid.UUID, apps []models.EventApplication) ApplicationBuckets {
	var b ApplicationBuckets
	for i := range apps {
		app := apps[i]
		if app.EventID != eventID {
			continue
		}
		switch app.Status {
		case models.ApplicationPending:
			b.Pending = append(b.Pending, app)
		case models.ApplicationApproved:
			b.Approved = append(b.Approved, app)
		case models.ApplicationRejected:
			b.Rejected = append(b.Rejected, app)
		}
	}
	return b
}
