package moderation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/models"
	"github.com/campus-events/portal/internal/workflow"
)

type noCreds struct{}

func (noCreds) Token(ctx context.Context) (string, error) { return "test-token", nil }
func (noCreds) Invalidate(ctx context.Context) error      { return nil }

// fakeUpstream is an in-memory campus API covering the resources the
// moderation service touches.
type fakeUpstream struct {
	t *testing.T

	events       map[uuid.UUID]*models.Event
	applications map[uuid.UUID]*models.EventApplication
	rooms        []models.Room
	users        []models.User
	history      []models.EventModerationHistory

	requests  int
	mutations int
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	return &fakeUpstream{
		t:            t,
		events:       make(map[uuid.UUID]*models.Event),
		applications: make(map[uuid.UUID]*models.EventApplication),
	}
}

func (f *fakeUpstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.requests++
		switch {
		case r.URL.Path == "/events" && r.Method == http.MethodGet:
			events := make([]models.Event, 0, len(f.events))
			for _, e := range f.events {
				events = append(events, *e)
			}
			_ = json.NewEncoder(w).Encode(events)
		case r.URL.Path == "/rooms" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(f.rooms)
		case r.URL.Path == "/users" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(f.users)
		case r.URL.Path == "/events/applications" && r.Method == http.MethodGet:
			apps := make([]models.EventApplication, 0, len(f.applications))
			for _, a := range f.applications {
				apps = append(apps, *a)
			}
			_ = json.NewEncoder(w).Encode(apps)
		case r.URL.Path == "/moderation/event-history" && r.Method == http.MethodGet:
			entries := f.history
			if raw := r.URL.Query().Get("event_id"); raw != "" {
				eventID := uuid.MustParse(raw)
				entries = nil
				for _, h := range f.history {
					if h.EventID == eventID {
						entries = append(entries, h)
					}
				}
			}
			_ = json.NewEncoder(w).Encode(entries)
		case strings.HasPrefix(r.URL.Path, "/moderation/event-history") && r.Method == http.MethodPost:
			f.mutations++
			var p gateway.EventHistoryCreatePayload
			require.NoError(f.t, json.NewDecoder(r.Body).Decode(&p))
			entry := models.EventModerationHistory{
				ID:        uuid.New(),
				EventID:   p.EventID,
				CuratorID: p.CuratorID,
				Action:    p.Action,
				Comment:   p.Comment,
				CreatedAt: time.Now(),
			}
			f.history = append(f.history, entry)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(entry)
		case strings.HasPrefix(r.URL.Path, "/events/applications/"):
			id := uuid.MustParse(strings.TrimPrefix(r.URL.Path, "/events/applications/"))
			app, ok := f.applications[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			switch r.Method {
			case http.MethodGet:
				_ = json.NewEncoder(w).Encode(app)
			case http.MethodPut:
				f.mutations++
				var p gateway.ApplicationUpdatePayload
				require.NoError(f.t, json.NewDecoder(r.Body).Decode(&p))
				if p.Status != nil {
					app.Status = *p.Status
				}
				if p.Motivation != nil {
					app.Motivation = p.Motivation
				}
				_ = json.NewEncoder(w).Encode(app)
			}
		case strings.HasPrefix(r.URL.Path, "/events/"):
			id := uuid.MustParse(strings.TrimPrefix(r.URL.Path, "/events/"))
			event, ok := f.events[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			switch r.Method {
			case http.MethodGet:
				_ = json.NewEncoder(w).Encode(event)
			case http.MethodPut:
				f.mutations++
				var p gateway.EventUpdatePayload
				require.NoError(f.t, json.NewDecoder(r.Body).Decode(&p))
				if p.Status != nil {
					event.Status = *p.Status
				}
				_ = json.NewEncoder(w).Encode(event)
			case http.MethodDelete:
				f.mutations++
				delete(f.events, id)
				w.WriteHeader(http.StatusNoContent)
			}
		default:
			f.t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}
}

func newTestService(t *testing.T) (*Service, *fakeUpstream) {
	t.Helper()
	fake := newFakeUpstream(t)
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	api := gateway.NewClient(srv.URL, 5*time.Second, noCreds{}, zap.NewNop())
	return NewService(api, zap.NewNop()), fake
}

func seedEvent(f *fakeUpstream, status models.EventStatus) *models.Event {
	event := &models.Event{
		ID:        uuid.New(),
		Title:     "Spring hackathon",
		Status:    status,
		CreatorID: uuid.New(),
		CuratorID: uuid.New(),
	}
	f.events[event.ID] = event
	return event
}

func testCurator() *models.User {
	return &models.User{ID: uuid.New(), Login: "curator", Role: models.RoleCurator}
}

func TestApproveEventWritesOneHistoryRow(t *testing.T) {
	svc, fake := newTestService(t)
	event := seedEvent(fake, models.EventPending)

	updated, err := svc.ApproveEvent(context.Background(), testCurator(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventApproved, updated.Status)

	require.Len(t, fake.history, 1)
	assert.Equal(t, models.ActionApprove, fake.history[0].Action)
	assert.Nil(t, fake.history[0].Comment)
	assert.Equal(t, event.ID, fake.history[0].EventID)
}

func TestRequestChangesAppendsComment(t *testing.T) {
	svc, fake := newTestService(t)
	event := seedEvent(fake, models.EventPending)

	updated, err := svc.RequestEventChanges(context.Background(), testCurator(), event.ID, "add agenda")
	require.NoError(t, err)
	assert.Equal(t, models.EventDraft, updated.Status)

	require.Len(t, fake.history, 1)
	assert.Equal(t, models.ActionRequestChanges, fake.history[0].Action)
	require.NotNil(t, fake.history[0].Comment)
	assert.Equal(t, "add agenda", *fake.history[0].Comment)
}

// A cancelled or empty comment aborts before any upstream call is made.
func TestRequestChangesEmptyCommentMakesNoCalls(t *testing.T) {
	svc, fake := newTestService(t)
	event := seedEvent(fake, models.EventPending)

	_, err := svc.RequestEventChanges(context.Background(), testCurator(), event.ID, "   ")
	assert.ErrorIs(t, err, workflow.ErrCommentRequired)
	assert.Zero(t, fake.requests)
	assert.Empty(t, fake.history)
	assert.Equal(t, models.EventPending, fake.events[event.ID].Status)
}

func TestRejectEventFromApprovedIsConflict(t *testing.T) {
	svc, fake := newTestService(t)
	event := seedEvent(fake, models.EventApproved)

	_, err := svc.RejectEvent(context.Background(), testCurator(), event.ID)
	var invalid *workflow.InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
	assert.Empty(t, fake.history)
	assert.Equal(t, models.EventApproved, fake.events[event.ID].Status)
}

func TestCompleteEventRequiresConfirmation(t *testing.T) {
	svc, fake := newTestService(t)
	event := seedEvent(fake, models.EventApproved)

	_, err := svc.CompleteEvent(context.Background(), testCurator(), event.ID, false)
	assert.ErrorIs(t, err, workflow.ErrConfirmationRequired)
	assert.Zero(t, fake.requests)

	updated, err := svc.CompleteEvent(context.Background(), testCurator(), event.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.EventCompleted, updated.Status)
	// Completion leaves no history trace.
	assert.Empty(t, fake.history)
}

func TestDeleteEvent(t *testing.T) {
	svc, fake := newTestService(t)
	event := seedEvent(fake, models.EventRejected)

	err := svc.DeleteEvent(context.Background(), testCurator(), event.ID, true)
	require.NoError(t, err)
	assert.NotContains(t, fake.events, event.ID)
}

func seedApplication(f *fakeUpstream, event *models.Event, motivation *string) *models.EventApplication {
	app := &models.EventApplication{
		ID:          uuid.New(),
		EventID:     event.ID,
		ApplicantID: uuid.New(),
		Status:      models.ApplicationPending,
		Motivation:  motivation,
	}
	f.applications[app.ID] = app
	return app
}

func TestReviseApplicationMutatesMotivation(t *testing.T) {
	svc, fake := newTestService(t)
	event := seedEvent(fake, models.EventApproved)
	motivation := "interested"
	app := seedApplication(fake, event, &motivation)

	updated, err := svc.ReviseApplication(context.Background(), testCurator(), app.ID, "say more")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, updated.Status)
	require.NotNil(t, updated.Motivation)
	assert.Equal(t, "interested\n\n[Requires revision] say more", *updated.Motivation)
}

func TestApproveApplicationNoHistorySideEffect(t *testing.T) {
	svc, fake := newTestService(t)
	event := seedEvent(fake, models.EventApproved)
	app := seedApplication(fake, event, nil)

	updated, err := svc.ApproveApplication(context.Background(), testCurator(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, updated.Status)
	assert.Empty(t, fake.history)
}

// The event's creator decides applications to their own event even without
// a moderator role.
func TestApproveApplicationByEventCreator(t *testing.T) {
	svc, fake := newTestService(t)
	event := seedEvent(fake, models.EventApproved)
	app := seedApplication(fake, event, nil)
	creator := &models.User{ID: event.CreatorID, Login: "creator", Role: models.RoleStudent}

	updated, err := svc.ApproveApplication(context.Background(), creator, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, updated.Status)
}

// A signed-in student unrelated to the event gets a forbidden error and the
// application is left untouched upstream.
func TestDecideApplicationUnrelatedUserForbidden(t *testing.T) {
	svc, fake := newTestService(t)
	event := seedEvent(fake, models.EventApproved)
	app := seedApplication(fake, event, nil)
	stranger := &models.User{ID: uuid.New(), Login: "stranger", Role: models.RoleStudent}

	_, err := svc.ApproveApplication(context.Background(), stranger, app.ID)
	assert.ErrorIs(t, err, workflow.ErrNotAllowed)

	_, err = svc.ReviseApplication(context.Background(), stranger, app.ID, "rework this")
	assert.ErrorIs(t, err, workflow.ErrNotAllowed)

	assert.Equal(t, models.ApplicationPending, fake.applications[app.ID].Status)
	assert.Nil(t, fake.applications[app.ID].Motivation)
	assert.Zero(t, fake.mutations)
}

// The console carries a draft bucket so curators see events sent back for
// revision, each with its reconstructed revision notes.
func TestBuildConsoleDraftBucket(t *testing.T) {
	svc, fake := newTestService(t)
	seedEvent(fake, models.EventPending)

	draft := seedEvent(fake, models.EventDraft)
	comment := "shorten the title"
	draft.ModerationComment = &comment
	older := "add a venue"
	fake.history = append(fake.history, models.EventModerationHistory{
		ID:        uuid.New(),
		EventID:   draft.ID,
		CuratorID: draft.CuratorID,
		Action:    models.ActionRequestChanges,
		Comment:   &older,
		CreatedAt: time.Now().Add(-time.Hour),
	})

	console, err := svc.BuildConsole(context.Background())
	require.NoError(t, err)
	assert.Len(t, console.Pending, 1)
	require.Len(t, console.Draft, 1)

	notes := console.Draft[0].RevisionNotes
	require.Len(t, notes, 2)
	assert.Equal(t, 0, notes[0].Number)
	assert.Equal(t, "shorten the title", notes[0].Comment)
	assert.Equal(t, 1, notes[1].Number)
	assert.Equal(t, "add a venue", notes[1].Comment)
}
