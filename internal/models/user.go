package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents a user's role on the campus platform.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCurator UserRole = "curator"
	RoleStudent UserRole = "student"
)

// CanModerate reports whether the role may drive event moderation
// transitions (approve, reject, request changes, delete).
func (r UserRole) CanModerate() bool {
	return r == RoleAdmin || r == RoleCurator
}

// User is a campus platform account.
type User struct {
	ID               uuid.UUID  `json:"id"`
	Login            string     `json:"login"`
	Role             UserRole   `json:"role"`
	TelegramUsername *string    `json:"telegram_username,omitempty"`
	TelegramChatID   *string    `json:"telegram_chat_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}
