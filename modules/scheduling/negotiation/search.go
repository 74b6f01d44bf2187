package negotiation

import (
	"fmt"
	"math"
)

const (
	DefaultOpeningHour = 9.0
	DefaultClosingHour = 17.0
	DefaultStepHours   = 0.5
)

// CandidateSearch walks a meeting's day in fixed steps from the opening hour.
// Only the candidate start is bounded by ClosingHour; a long meeting starting
// just before closing may end after it.
type CandidateSearch struct {
	OpeningHour float64
	ClosingHour float64
	StepHours   float64
}

// NewCandidateSearch returns the default 09:00-17:00 half-hour grid.
func NewCandidateSearch() CandidateSearch {
	return CandidateSearch{
		OpeningHour: DefaultOpeningHour,
		ClosingHour: DefaultClosingHour,
		StepHours:   DefaultStepHours,
	}
}

func (cs CandidateSearch) Validate() error {
	switch {
	case cs.StepHours <= 0:
		return fmt.Errorf("step must be positive, got %v", cs.StepHours)
	case cs.OpeningHour < 0 || cs.ClosingHour > 24:
		return fmt.Errorf("window %v-%v outside the day", cs.OpeningHour, cs.ClosingHour)
	case cs.ClosingHour <= cs.OpeningHour:
		return fmt.Errorf("closing hour %v not after opening hour %v", cs.ClosingHour, cs.OpeningHour)
	}
	return nil
}

// Opening is the first candidate for m.
func (cs CandidateSearch) Opening(m Meeting) TimeSlot {
	return TimeSlot{Date: m.Date, Start: cs.OpeningHour, End: cs.OpeningHour + m.Duration}
}

// Next returns the candidate after cur, or false once its start would reach
// the closing hour.
func (cs CandidateSearch) Next(cur TimeSlot, duration float64) (TimeSlot, bool) {
	start := cur.Start + cs.StepHours
	if start >= cs.ClosingHour {
		return TimeSlot{}, false
	}
	return TimeSlot{Date: cur.Date, Start: start, End: start + duration}, true
}

// MaxAttempts is the number of candidates a meeting can be offered before the
// search is exhausted.
func (cs CandidateSearch) MaxAttempts() int {
	if cs.StepHours <= 0 || cs.ClosingHour <= cs.OpeningHour {
		return 1
	}
	return int(math.Ceil((cs.ClosingHour - cs.OpeningHour) / cs.StepHours))
}

// Candidates lists every slot the search would offer for m, in order.
func (cs CandidateSearch) Candidates(m Meeting) []TimeSlot {
	cur := cs.Opening(m)
	if cs.Validate() != nil {
		return []TimeSlot{cur}
	}
	slots := make([]TimeSlot, 0, cs.MaxAttempts())
	for ok := true; ok; cur, ok = cs.Next(cur, m.Duration) {
		slots = append(slots, cur)
	}
	return slots
}
