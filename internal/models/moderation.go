package models

import (
	"time"

	"github.com/google/uuid"
)

// ModerationAction identifies a curator decision in the audit log.
type ModerationAction string

const (
	ActionSubmit         ModerationAction = "submit"
	ActionApprove        ModerationAction = "approve"
	ActionReject         ModerationAction = "reject"
	ActionRequestChanges ModerationAction = "request_changes"
)

// EventModerationHistory is an append-only audit log entry for an event
// moderation decision. Created once per decision, never mutated or deleted
// by the workflow; read back to reconstruct why an event is in draft.
type EventModerationHistory struct {
	ID        uuid.UUID        `json:"id"`
	EventID   uuid.UUID        `json:"event_id"`
	CuratorID uuid.UUID        `json:"curator_id"`
	Action    ModerationAction `json:"action"`
	Comment   *string          `json:"comment,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
}

// ApplicationHistory is the audit log for application decisions. The
// resource exists in the campus API but no portal flow writes to it.
type ApplicationHistory struct {
	ID            uuid.UUID        `json:"id"`
	ApplicationID uuid.UUID        `json:"application_id"`
	ModeratorID   uuid.UUID        `json:"moderator_id"`
	Action        ModerationAction `json:"action"`
	Comment       *string          `json:"comment,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty"`
}
