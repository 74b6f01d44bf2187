package dto

import (
	"time"

	"meeting-scheduler/modules/scheduling/negotiation"

	"github.com/google/uuid"
)

// Run lifecycle as stored in the run status record.
const (
	RunStatusPending   = "pending"
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Per-meeting outcome status.
const (
	OutcomeScheduled = "scheduled"
	OutcomeFailed    = "failed"
)

// ===================== Request DTOs =====================

// PreviewRequest selects the meetings to dry-run. Empty means every meeting
// a real run would pick up.
type PreviewRequest struct {
	MeetingIDs []uuid.UUID `json:"meeting_ids"`
}

// ===================== Response DTOs =====================

type MeetingPlaceholder struct {
	MeetingID uuid.UUID `json:"meeting_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
}

// RunResponse is returned as soon as a run is accepted.
type RunResponse struct {
	RunID    string               `json:"run_id"`
	Status   string               `json:"status"`
	Meetings []MeetingPlaceholder `json:"meetings"`
}

type OutcomeResponse struct {
	MeetingID    string                `json:"meeting_id"`
	Name         string                `json:"name"`
	Status       string                `json:"status"`
	TimeSlot     *negotiation.TimeSlot `json:"time_slot,omitempty"`
	Participants []string              `json:"participants,omitempty"`
	Error        string                `json:"error,omitempty"`
	Attempts     int                   `json:"attempts"`
}

// RunStatus is the record kept in the cache for each run and updated as
// meetings finish.
type RunStatus struct {
	RunID      string            `json:"run_id"`
	Status     string            `json:"status"`
	Meetings   int               `json:"meetings"`
	Scheduled  int               `json:"scheduled"`
	Failed     int               `json:"failed"`
	Outcomes   []OutcomeResponse `json:"outcomes"`
	Error      string            `json:"error,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	StartedAt  *time.Time        `json:"started_at,omitempty"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
}

type AttendeeResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// MeetingStatusResponse is one row of GET /scheduling/status.
type MeetingStatusResponse struct {
	MeetingID    uuid.UUID             `json:"meeting_id"`
	Name         string                `json:"name"`
	Date         string                `json:"date"`
	Status       string                `json:"status"`
	TimeSlot     *negotiation.TimeSlot `json:"time_slot,omitempty"`
	Participants []AttendeeResponse    `json:"participants"`
	Error        string                `json:"error,omitempty"`
}

type PreviewResponse struct {
	Outcomes []OutcomeResponse `json:"outcomes"`
}

// ===================== Task payloads =====================

// RunPayload is the body of a scheduling run task.
type RunPayload struct {
	RunID string `json:"run_id"`
}
