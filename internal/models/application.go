package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the sub-lifecycle status of an event application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// EventApplication is a candidate's application to a gated event.
// One application per (event, applicant) is intended but not enforced at
// this layer; the portal checks for an existing application before allowing
// a new submission, which is a race-prone approximation.
type EventApplication struct {
	ID          uuid.UUID         `json:"id"`
	EventID     uuid.UUID         `json:"event_id"`
	ApplicantID uuid.UUID         `json:"applicant_id"`
	Status      ApplicationStatus `json:"status"`
	Motivation  *string           `json:"motivation,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
}

// EventRegistration is a direct registration for an open (non-gated) event.
// Same per-pair uniqueness caveat as EventApplication.
type EventRegistration struct {
	ID        uuid.UUID  `json:"id"`
	EventID   uuid.UUID  `json:"event_id"`
	UserID    uuid.UUID  `json:"user_id"`
	Comment   *string    `json:"comment,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
