package entity

import (
	"time"

	"github.com/google/uuid"
)

// MeetingParticipant links a meeting to an invited participant.
type MeetingParticipant struct {
	MeetingID     uuid.UUID `db:"meeting_id" json:"meeting_id"`
	ParticipantID uuid.UUID `db:"participant_id" json:"participant_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Attendee is a participant who accepted the committed slot.
type Attendee struct {
	MeetingID     uuid.UUID `db:"meeting_id" json:"meeting_id"`
	ParticipantID uuid.UUID `db:"participant_id" json:"participant_id"`
}
