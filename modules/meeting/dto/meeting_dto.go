package dto

import (
	"math"
	"strings"
	"time"

	"meeting-scheduler/core/controller"
	coredto "meeting-scheduler/core/dto"
	"meeting-scheduler/core/utils"

	"github.com/google/uuid"
)

// ===================== Request DTOs =====================

// MeetingRequest creates or replaces a meeting. A zero MinimumParticipants
// falls back to the default quorum; a nil ParticipantIDs on update keeps the
// current invitations.
type MeetingRequest struct {
	Name                string      `json:"name"`
	Date                string      `json:"date"`
	Duration            float64     `json:"duration"`
	MinimumParticipants int         `json:"minimum_participants"`
	ParticipantIDs      []uuid.UUID `json:"participant_ids"`
}

func (r *MeetingRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Date = strings.TrimSpace(r.Date)
}

func (r *MeetingRequest) Validate() []controller.ValidationError {
	var errs []controller.ValidationError
	if r.Name == "" {
		errs = append(errs, controller.NewValidationError("name", "name is required"))
	}
	if !utils.IsValidDate(r.Date) {
		errs = append(errs, controller.NewValidationError("date", "date must be YYYY-MM-DD"))
	}
	switch {
	case math.IsNaN(r.Duration) || r.Duration <= 0 || r.Duration > 24:
		errs = append(errs, controller.NewValidationError("duration", "duration must be between 0 and 24 hours"))
	case !utils.IsHalfHour(r.Duration):
		errs = append(errs, controller.NewValidationError("duration", "duration must be a multiple of half an hour"))
	}
	if r.MinimumParticipants < 0 {
		errs = append(errs, controller.NewValidationError("minimum_participants", "minimum_participants must be at least 1"))
	}
	for _, id := range r.ParticipantIDs {
		if id == uuid.Nil {
			errs = append(errs, controller.NewValidationError("participant_ids", "participant id must not be empty"))
			break
		}
	}
	return errs
}

// ===================== Response DTOs =====================

type ScheduledSlotResponse struct {
	Date      string  `json:"date"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	RunID     string  `json:"run_id"`
}

type MeetingResponse struct {
	ID                  uuid.UUID              `json:"id"`
	Name                string                 `json:"name"`
	Date                string                 `json:"date"`
	Duration            float64                `json:"duration"`
	MinimumParticipants int                    `json:"minimum_participants"`
	Status              string                 `json:"status"`
	Error               string                 `json:"error,omitempty"`
	ParticipantIDs      []uuid.UUID            `json:"participant_ids"`
	ScheduledSlot       *ScheduledSlotResponse `json:"scheduled_slot,omitempty"`
	Attendees           []uuid.UUID            `json:"attendees,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

type PaginatedMeetingResponse = coredto.Pagination[MeetingResponse]
