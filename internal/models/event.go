package models

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus is the moderation lifecycle status of an event.
type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPending   EventStatus = "pending"
	EventApproved  EventStatus = "approved"
	EventRejected  EventStatus = "rejected"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

// EventType distinguishes student-organized from official events.
type EventType string

const (
	EventTypeStudent  EventType = "student"
	EventTypeOfficial EventType = "official"
)

// Event is a bookable campus activity. Date and times are local wall-clock
// strings as the campus API serves them (no timezone encoded).
type Event struct {
	ID                    uuid.UUID   `json:"id"`
	Title                 string      `json:"title"`
	Description           *string     `json:"description,omitempty"`
	EventDate             string      `json:"event_date"`
	StartTime             string      `json:"start_time"`
	EndTime               string      `json:"end_time"`
	RegisteredCount       int         `json:"registered_count"`
	MaxParticipants       *int        `json:"max_participants,omitempty"` // nil = unlimited
	Status                EventStatus `json:"status"`
	EventType             EventType   `json:"event_type"`
	CreatorID             uuid.UUID   `json:"creator_id"`
	CuratorID             uuid.UUID   `json:"curator_id"`
	IsExternalVenue       bool        `json:"is_external_venue"`
	RoomID                *uuid.UUID  `json:"room_id,omitempty"`
	ExternalLocation      *string     `json:"external_location,omitempty"`
	NeedApproveCandidates bool        `json:"need_approve_candidates"`
	ModerationComment     *string     `json:"moderation_comment,omitempty"` // denormalized latest revision note
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             *time.Time  `json:"updated_at,omitempty"`
}

// AtCapacity reports whether the event has no seats left. Unlimited events
// (nil max_participants) are never at capacity.
func (e *Event) AtCapacity() bool {
	return e.MaxParticipants != nil && e.RegisteredCount >= *e.MaxParticipants
}
