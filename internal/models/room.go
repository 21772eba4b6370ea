package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Room is a bookable campus room. Read-only from the workflow's perspective.
type Room struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Capacity    int             `json:"capacity"`
	Location    *string         `json:"location,omitempty"`
	Equipment   json.RawMessage `json:"equipment,omitempty"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}
