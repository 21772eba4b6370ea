package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies the notification kind.
type NotificationType string

const (
	NotificationApplicationStatus NotificationType = "application_status"
	NotificationEventReminder     NotificationType = "event_reminder"
	NotificationNewEvent          NotificationType = "new_event"
	NotificationSystem            NotificationType = "system"
)

// Notification is a user-facing notification record.
type Notification struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	IsRead         bool             `json:"is_read"`
	RelatedEventID *uuid.UUID       `json:"related_event_id,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      *time.Time       `json:"updated_at,omitempty"`
}
