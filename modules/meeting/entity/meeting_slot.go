package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledSlot is the slot a scheduling run committed for a meeting.
type ScheduledSlot struct {
	ID        uuid.UUID `db:"id" json:"id"`
	MeetingID uuid.UUID `db:"meeting_id" json:"meeting_id"`
	RunID     string    `db:"run_id" json:"run_id"`
	Date      string    `db:"date" json:"date"`
	StartTime float64   `db:"start_time" json:"start_time"`
	EndTime   float64   `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
