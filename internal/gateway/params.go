package gateway

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/campus-events/portal/internal/models"
)

// List parameter structs mirror the campus API query contracts. Booleans
// serialize as literal "true"/"false"; nil fields are omitted.

// UserListParams filters GET /users.
type UserListParams struct {
	Offset *int
	Limit  *int
	Role   *models.UserRole
}

func (p UserListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "offset", p.Offset)
	setInt(v, "limit", p.Limit)
	if p.Role != nil {
		v.Set("role", string(*p.Role))
	}
	return v
}

// RoomListParams filters GET /rooms.
type RoomListParams struct {
	Offset      *int
	Limit       *int
	IsAvailable *bool
}

func (p RoomListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "offset", p.Offset)
	setInt(v, "limit", p.Limit)
	setBool(v, "is_available", p.IsAvailable)
	return v
}

// EventListParams filters GET /events.
type EventListParams struct {
	Offset    *int
	Limit     *int
	Status    *models.EventStatus
	EventType *models.EventType
	CreatorID *uuid.UUID
	CuratorID *uuid.UUID
	RoomID    *uuid.UUID
	DateFrom  *string
	DateTo    *string
}

func (p EventListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "offset", p.Offset)
	setInt(v, "limit", p.Limit)
	if p.Status != nil {
		v.Set("status", string(*p.Status))
	}
	if p.EventType != nil {
		v.Set("event_type", string(*p.EventType))
	}
	setUUID(v, "creator_id", p.CreatorID)
	setUUID(v, "curator_id", p.CuratorID)
	setUUID(v, "room_id", p.RoomID)
	setStr(v, "date_from", p.DateFrom)
	setStr(v, "date_to", p.DateTo)
	return v
}

// ApplicationListParams filters GET /events/applications.
type ApplicationListParams struct {
	Offset      *int
	Limit       *int
	EventID     *uuid.UUID
	ApplicantID *uuid.UUID
	Status      *models.ApplicationStatus
}

func (p ApplicationListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "offset", p.Offset)
	setInt(v, "limit", p.Limit)
	setUUID(v, "event_id", p.EventID)
	setUUID(v, "applicant_id", p.ApplicantID)
	if p.Status != nil {
		v.Set("status", string(*p.Status))
	}
	return v
}

// RegistrationListParams filters GET /events/registrations.
type RegistrationListParams struct {
	Offset  *int
	Limit   *int
	EventID *uuid.UUID
	UserID  *uuid.UUID
}

func (p RegistrationListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "offset", p.Offset)
	setInt(v, "limit", p.Limit)
	setUUID(v, "event_id", p.EventID)
	setUUID(v, "user_id", p.UserID)
	return v
}

// CategoryListParams filters GET /events/categories.
type CategoryListParams struct {
	Offset *int
	Limit  *int
	Name   *string
}

func (p CategoryListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "offset", p.Offset)
	setInt(v, "limit", p.Limit)
	setStr(v, "name", p.Name)
	return v
}

// CategoryMappingListParams filters GET /events/category-mappings.
type CategoryMappingListParams struct {
	Offset     *int
	Limit      *int
	EventID    *uuid.UUID
	CategoryID *uuid.UUID
}

func (p CategoryMappingListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "offset", p.Offset)
	setInt(v, "limit", p.Limit)
	setUUID(v, "event_id", p.EventID)
	setUUID(v, "category_id", p.CategoryID)
	return v
}

// NotificationListParams filters GET /notifications.
type NotificationListParams struct {
	Offset *int
	Limit  *int
	UserID *uuid.UUID
	Type   *models.NotificationType
	IsRead *bool
}

func (p NotificationListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "offset", p.Offset)
	setInt(v, "limit", p.Limit)
	setUUID(v, "user_id", p.UserID)
	if p.Type != nil {
		v.Set("type", string(*p.Type))
	}
	setBool(v, "is_read", p.IsRead)
	return v
}

// EventHistoryListParams filters GET /moderation/event-history.
type EventHistoryListParams struct {
	Offset    *int
	Limit     *int
	EventID   *uuid.UUID
	CuratorID *uuid.UUID
}

func (p EventHistoryListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "offset", p.Offset)
	setInt(v, "limit", p.Limit)
	setUUID(v, "event_id", p.EventID)
	setUUID(v, "curator_id", p.CuratorID)
	return v
}

// ApplicationHistoryListParams filters GET /moderation/application-history.
type ApplicationHistoryListParams struct {
	Offset        *int
	Limit         *int
	ApplicationID *uuid.UUID
	ModeratorID   *uuid.UUID
}

func (p ApplicationHistoryListParams) values() url.Values {
	v := url.Values{}
	setInt(v, "offset", p.Offset)
	setInt(v, "limit", p.Limit)
	setUUID(v, "application_id", p.ApplicationID)
	setUUID(v, "moderator_id", p.ModeratorID)
	return v
}

func setInt(v url.Values, key string, n *int) {
	if n != nil {
		v.Set(key, strconv.Itoa(*n))
	}
}

func setStr(v url.Values, key string, s *string) {
	if s != nil {
		v.Set(key, *s)
	}
}

func setBool(v url.Values, key string, b *bool) {
	if b != nil {
		v.Set(key, strconv.FormatBool(*b))
	}
}

func setUUID(v url.Values, key string, id *uuid.UUID) {
	if id != nil {
		v.Set(key, id.String())
	}
}

// Ptr returns a pointer to v, for filling optional params inline.
func Ptr[T any](v T) *T { return &v }
