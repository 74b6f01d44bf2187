package entity

import (
	"meeting-scheduler/core/entity"
)

// MeetingStatus tracks where a meeting is in the scheduling lifecycle.
type MeetingStatus string

const (
	MeetingStatusPending   MeetingStatus = "pending"
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusFailed    MeetingStatus = "failed"
)

// Meeting is a request to find a common slot on one date. Duration is in
// hours; 1.5 is an hour and a half.
type Meeting struct {
	entity.BaseEntity
	Name                string        `db:"name" json:"name"`
	Date                string        `db:"date" json:"date"`
	Duration            float64       `db:"duration" json:"duration"`
	MinimumParticipants int           `db:"minimum_participants" json:"minimum_participants"`
	Status              MeetingStatus `db:"status" json:"status"`
	LastError           *string       `db:"last_error" json:"last_error,omitempty"`
}

type PaginatedMeetings = entity.Pagination[Meeting]
