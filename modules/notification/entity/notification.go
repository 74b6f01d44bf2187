package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"meeting-scheduler/core/entity"

	"github.com/google/uuid"
)

const TypeMeetingScheduled = "meeting_scheduled"

// Notification is one entry in a participant's inbox.
type Notification struct {
	entity.BaseEntity
	ParticipantID uuid.UUID `db:"participant_id" json:"participant_id"`
	MeetingID     uuid.UUID `db:"meeting_id" json:"meeting_id"`
	Type          string    `db:"type" json:"type"`
	Title         string    `db:"title" json:"title"`
	Message       string    `db:"message" json:"message"`
	Data          JSONB     `db:"data" json:"data"`
	IsRead        bool      `db:"is_read" json:"is_read"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

func (a *JSONB) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, a)
}

type PaginatedNotifications = entity.Pagination[Notification]
