package dto

import (
	"time"

	coredto "meeting-scheduler/core/dto"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        uuid.UUID      `json:"id"`
	MeetingID uuid.UUID      `json:"meeting_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

type PaginatedNotificationResponse = coredto.Pagination[NotificationResponse]

type MarkAsReadRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type MarkAsReadResponse struct {
	Updated int64 `json:"updated"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

// MeetingScheduled describes a committed meeting; every attendee receives
// one notification for it.
type MeetingScheduled struct {
	RunID       string
	MeetingID   uuid.UUID
	MeetingName string
	Date        string
	StartTime   float64
	EndTime     float64
	Attendees   []uuid.UUID
}
