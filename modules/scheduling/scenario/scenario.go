// Package scenario runs the negotiation on a self-contained YAML description
// of participants and meetings, without a database or queue.
package scenario

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"meeting-scheduler/core/logger"
	"meeting-scheduler/modules/scheduling/negotiation"

	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Window overrides the candidate search. Zero fields keep the caller's value.
type Window struct {
	OpeningHour float64 `yaml:"opening_hour"`
	ClosingHour float64 `yaml:"closing_hour"`
	StepHours   float64 `yaml:"step_hours"`
}

type Participant struct {
	ID        string                 `yaml:"id"`
	Name      string                 `yaml:"name"`
	Available []negotiation.TimeSlot `yaml:"available"`
}

// Scenario is the file format read by the simulate command:
//
//	window: {opening_hour: 9, closing_hour: 17, step_hours: 0.5}
//	participants:
//	  - id: alice
//	    available: [{date: 2024-01-15, start: 9, end: 11}]
//	meetings:
//	  - {id: kickoff, date: 2024-01-15, duration: 1, minimum_participants: 2}
type Scenario struct {
	Window       *Window               `yaml:"window"`
	Participants []Participant         `yaml:"participants"`
	Meetings     []negotiation.Meeting `yaml:"meetings"`
}

// Report is what a run produces: outcomes in meeting order and the final
// calendar of every participant, keyed by participant then meeting id.
type Report struct {
	Outcomes  []negotiation.MeetingOutcome               `json:"outcomes"`
	Calendars map[string]map[string]negotiation.TimeSlot `json:"calendars"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario. Unknown keys are rejected so that
// typos do not silently drop data.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) Validate() error {
	seen := make(map[string]struct{}, len(s.Participants))
	for i, p := range s.Participants {
		if p.ID == "" {
			return fmt.Errorf("%w: participant %d has no id", ErrInvalidScenario, i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate participant id %q", ErrInvalidScenario, p.ID)
		}
		seen[p.ID] = struct{}{}
		for _, slot := range p.Available {
			if err := slot.Validate(); err != nil {
				return fmt.Errorf("%w: participant %q: %w", ErrInvalidScenario, p.ID, err)
			}
		}
	}
	if len(s.Meetings) == 0 {
		return fmt.Errorf("%w: no meetings", ErrInvalidScenario)
	}
	return nil
}

// Search applies the scenario window on top of base.
func (s *Scenario) Search(base negotiation.CandidateSearch) negotiation.CandidateSearch {
	if s.Window == nil {
		return base
	}
	if s.Window.OpeningHour != 0 {
		base.OpeningHour = s.Window.OpeningHour
	}
	if s.Window.ClosingHour != 0 {
		base.ClosingHour = s.Window.ClosingHour
	}
	if s.Window.StepHours != 0 {
		base.StepHours = s.Window.StepHours
	}
	return base
}

func (s *Scenario) Run(ctx context.Context, base negotiation.CandidateSearch) (*Report, error) {
	meetings := make([]negotiation.Meeting, len(s.Meetings))
	for i, m := range s.Meetings {
		if m.ID == "" {
			m.ID = strconv.Itoa(i)
		}
		meetings[i] = m.WithDefaults()
	}

	participants := make([]*negotiation.Participant, len(s.Participants))
	for i, p := range s.Participants {
		participants[i] = negotiation.NewParticipant(p.ID, p.Available, negotiation.WithName(p.Name))
	}

	outcomes, err := negotiation.NewCoordinator(s.Search(base)).ScheduleAll(ctx, meetings, participants)
	if err != nil && outcomes == nil {
		return nil, err
	}

	report := &Report{
		Outcomes:  make([]negotiation.MeetingOutcome, 0, len(meetings)),
		Calendars: make(map[string]map[string]negotiation.TimeSlot, len(participants)),
	}
	for _, m := range meetings {
		if o, ok := outcomes[m.ID]; ok {
			report.Outcomes = append(report.Outcomes, o)
		}
	}
	for _, p := range participants {
		report.Calendars[p.ID()] = p.Commitments()
	}
	logger.Info("Scenario:Run:Done", "meetings", len(meetings), "outcomes", len(report.Outcomes))
	return report, err
}
