package negotiation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrInvalidSlot      = errors.New("invalid time slot")
	ErrInvalidMeeting   = errors.New("invalid meeting")
	ErrDuplicateMeeting = errors.New("duplicate meeting id")
	ErrNoSuitableSlot   = errors.New("no suitable time slot found")
)

// DefaultMinimumParticipants is the quorum used when a meeting leaves it unset.
const DefaultMinimumParticipants = 2

// TimeSlot is a window on a single day. Start and End are hours of the day;
// fractions express half hours (9.5 is 09:30).
type TimeSlot struct {
	Date  string  `json:"date" yaml:"date"`
	Start float64 `json:"start_time" yaml:"start"`
	End   float64 `json:"end_time" yaml:"end"`
}

func (s TimeSlot) Duration() float64 { return s.End - s.Start }

func (s TimeSlot) Validate() error {
	if s.Date == "" {
		return fmt.Errorf("%w: missing date", ErrInvalidSlot)
	}
	if math.IsNaN(s.Start) || math.IsNaN(s.End) || s.End < s.Start {
		return fmt.Errorf("%w: end %v before start %v", ErrInvalidSlot, s.End, s.Start)
	}
	return nil
}

// Key identifies a candidate within one negotiation.
func (s TimeSlot) Key() string {
	return s.Date + "_" + strconv.FormatFloat(s.Start, 'f', -1, 64)
}

// Overlaps reports whether both slots are on the same date and their
// intersection lasts at least required hours. A free block only needs to
// cover the required length, not match the other slot exactly.
func (s TimeSlot) Overlaps(other TimeSlot, required float64) bool {
	if s.Date != other.Date {
		return false
	}
	latestStart := math.Max(s.Start, other.Start)
	earliestEnd := math.Min(s.End, other.End)
	return earliestEnd-latestStart >= required
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Date, clock(s.Start), clock(s.End))
}

func clock(h float64) string {
	whole := math.Floor(h)
	minutes := int(math.Round((h - whole) * 60))
	return fmt.Sprintf("%02d:%02d", int(whole), minutes)
}

// Meeting is a request to find a slot. It must not change once submitted.
type Meeting struct {
	ID                  string  `json:"id" yaml:"id"`
	Name                string  `json:"name" yaml:"name"`
	Date                string  `json:"date" yaml:"date"`
	Duration            float64 `json:"duration" yaml:"duration"`
	MinimumParticipants int     `json:"minimum_participants" yaml:"minimum_participants"`
}

// WithDefaults fills an unset quorum with DefaultMinimumParticipants.
func (m Meeting) WithDefaults() Meeting {
	if m.MinimumParticipants == 0 {
		m.MinimumParticipants = DefaultMinimumParticipants
	}
	return m
}

func (m Meeting) Validate() error {
	switch {
	case m.Date == "":
		return fmt.Errorf("%w: date is required", ErrInvalidMeeting)
	case math.IsNaN(m.Duration) || m.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidMeeting, m.Duration)
	case m.MinimumParticipants < 1:
		return fmt.Errorf("%w: minimum_participants must be at least 1, got %d", ErrInvalidMeeting, m.MinimumParticipants)
	}
	return nil
}

// MeetingOutcome is the terminal result of one negotiation. Either TimeSlot
// and Participants are set (Scheduled) or Error is.
type MeetingOutcome struct {
	MeetingID    string    `json:"meeting_id"`
	Name         string    `json:"name"`
	Scheduled    bool      `json:"scheduled"`
	TimeSlot     *TimeSlot `json:"time_slot,omitempty"`
	Participants []string  `json:"participants,omitempty"`
	Error        string    `json:"error,omitempty"`
	Attempts     int       `json:"attempts"`
}
