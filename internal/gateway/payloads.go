package gateway

import (
	"github.com/google/uuid"

	"github.com/campus-events/portal/internal/models"
)

// LoginPayload is the body for POST /auth/login.
type LoginPayload struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RegisterPayload is the body for POST /auth/register.
type RegisterPayload struct {
	Login            string           `json:"login"`
	Password         string           `json:"password"`
	Role             *models.UserRole `json:"role,omitempty"`
	TelegramUsername *string          `json:"telegram_username,omitempty"`
	TelegramChatID   *string          `json:"telegram_chat_id,omitempty"`
}

// TokenPayload is the auth response carrying the bearer credential.
type TokenPayload struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	UserID      uuid.UUID `json:"user_id"`
}

// EventCreatePayload is the body for POST /events/.
type EventCreatePayload struct {
	Title                 string              `json:"title"`
	Description           *string             `json:"description,omitempty"`
	EventDate             string              `json:"event_date"`
	StartTime             string              `json:"start_time"`
	EndTime               string              `json:"end_time"`
	MaxParticipants       *int                `json:"max_participants,omitempty"`
	Status                *models.EventStatus `json:"status,omitempty"`
	EventType             *models.EventType   `json:"event_type,omitempty"`
	CreatorID             uuid.UUID           `json:"creator_id"`
	CuratorID             uuid.UUID           `json:"curator_id"`
	IsExternalVenue       bool                `json:"is_external_venue"`
	RoomID                *uuid.UUID          `json:"room_id,omitempty"`
	ExternalLocation      *string             `json:"external_location,omitempty"`
	NeedApproveCandidates bool                `json:"need_approve_candidates"`
}

// EventUpdatePayload is the body for PUT /events/{id}. Nil fields are left
// untouched upstream.
type EventUpdatePayload struct {
	Title                 *string             `json:"title,omitempty"`
	Description           *string             `json:"description,omitempty"`
	EventDate             *string             `json:"event_date,omitempty"`
	StartTime             *string             `json:"start_time,omitempty"`
	EndTime               *string             `json:"end_time,omitempty"`
	RegisteredCount       *int                `json:"registered_count,omitempty"`
	MaxParticipants       *int                `json:"max_participants,omitempty"`
	Status                *models.EventStatus `json:"status,omitempty"`
	EventType             *models.EventType   `json:"event_type,omitempty"`
	CuratorID             *uuid.UUID          `json:"curator_id,omitempty"`
	IsExternalVenue       *bool               `json:"is_external_venue,omitempty"`
	RoomID                *uuid.UUID          `json:"room_id,omitempty"`
	ExternalLocation      *string             `json:"external_location,omitempty"`
	NeedApproveCandidates *bool               `json:"need_approve_candidates,omitempty"`
}

// ApplicationCreatePayload is the body for POST /events/applications.
type ApplicationCreatePayload struct {
	EventID     uuid.UUID                 `json:"event_id"`
	ApplicantID uuid.UUID                 `json:"applicant_id"`
	Status      *models.ApplicationStatus `json:"status,omitempty"`
	Motivation  *string                   `json:"motivation,omitempty"`
}

// ApplicationUpdatePayload is the body for PUT /events/applications/{id}.
type ApplicationUpdatePayload struct {
	Status     *models.ApplicationStatus `json:"status,omitempty"`
	Motivation *string                   `json:"motivation,omitempty"`
}

// RegistrationCreatePayload is the body for POST /events/registrations.
type RegistrationCreatePayload struct {
	EventID uuid.UUID `json:"event_id"`
	UserID  uuid.UUID `json:"user_id"`
	Comment *string   `json:"comment,omitempty"`
}

// RegistrationUpdatePayload is the body for PUT /events/registrations/{id}.
type RegistrationUpdatePayload struct {
	Comment *string `json:"comment,omitempty"`
}

// RoomCreatePayload is the body for POST /rooms/.
type RoomCreatePayload struct {
	Name        string  `json:"name"`
	Capacity    int     `json:"capacity"`
	Location    *string `json:"location,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
}

// RoomUpdatePayload is the body for PUT /rooms/{id}.
type RoomUpdatePayload struct {
	Name        *string `json:"name,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Location    *string `json:"location,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
}

// CategoryCreatePayload is the body for POST /events/categories.
type CategoryCreatePayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// CategoryUpdatePayload is the body for PUT /events/categories/{id}.
type CategoryUpdatePayload struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// CategoryMappingCreatePayload is the body for POST /events/category-mappings.
type CategoryMappingCreatePayload struct {
	EventID    uuid.UUID `json:"event_id"`
	CategoryID uuid.UUID `json:"category_id"`
}

// NotificationCreatePayload is the body for POST /notifications/.
type NotificationCreatePayload struct {
	UserID         uuid.UUID               `json:"user_id"`
	Type           models.NotificationType `json:"type"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	IsRead         *bool                   `json:"is_read,omitempty"`
	RelatedEventID *uuid.UUID              `json:"related_event_id,omitempty"`
}

// NotificationUpdatePayload is the body for PUT /notifications/{id}.
type NotificationUpdatePayload struct {
	Type           *models.NotificationType `json:"type,omitempty"`
	Title          *string                  `json:"title,omitempty"`
	Message        *string                  `json:"message,omitempty"`
	IsRead         *bool                    `json:"is_read,omitempty"`
	RelatedEventID *uuid.UUID               `json:"related_event_id,omitempty"`
}

// EventHistoryCreatePayload is the body for POST /moderation/event-history.
type EventHistoryCreatePayload struct {
	EventID   uuid.UUID               `json:"event_id"`
	CuratorID uuid.UUID               `json:"curator_id"`
	Action    models.ModerationAction `json:"action"`
	Comment   *string                 `json:"comment"`
}

// ApplicationHistoryCreatePayload is the body for POST /moderation/application-history.
type ApplicationHistoryCreatePayload struct {
	ApplicationID uuid.UUID               `json:"application_id"`
	ModeratorID   uuid.UUID               `json:"moderator_id"`
	Action        models.ModerationAction `json:"action"`
	Comment       *string                 `json:"comment"`
}
