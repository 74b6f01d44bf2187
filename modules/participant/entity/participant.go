package entity

import (
	"time"

	"meeting-scheduler/core/entity"

	"github.com/google/uuid"
)

type Participant struct {
	entity.BaseEntity
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

// TimeSlot is a block of free time. StartTime and EndTime are fractional
// hours of Date.
type TimeSlot struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ParticipantID uuid.UUID `db:"participant_id" json:"participant_id"`
	Date          string    `db:"date" json:"date"`
	StartTime     float64   `db:"start_time" json:"start_time"`
	EndTime       float64   `db:"end_time" json:"end_time"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type PaginatedParticipants = entity.Pagination[Participant]
