package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"meeting-scheduler/modules/scheduling/negotiation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kickoff = `
participants:
  - id: alice
    name: Alice
    available:
      - {date: "2024-01-15", start: 9, end: 11}
  - id: bob
    available:
      - {date: "2024-01-15", start: 9, end: 11}
  - id: carol
    available:
      - {date: "2024-01-15", start: 14, end: 16}
meetings:
  - id: kickoff
    name: Kickoff
    date: "2024-01-15"
    duration: 1
    minimum_participants: 2
`

func TestRun(t *testing.T) {
	s, err := Parse([]byte(kickoff))
	require.NoError(t, err)

	report, err := s.Run(context.Background(), negotiation.NewCandidateSearch())
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 1)

	o := report.Outcomes[0]
	assert.True(t, o.Scheduled)
	assert.Equal(t, &negotiation.TimeSlot{Date: "2024-01-15", Start: 9, End: 10}, o.TimeSlot)
	assert.Equal(t, []string{"alice", "bob"}, o.Participants)

	assert.Contains(t, report.Calendars["alice"], "kickoff")
	assert.Contains(t, report.Calendars["bob"], "kickoff")
	assert.Empty(t, report.Calendars["carol"])
}

func TestRun_Window(t *testing.T) {
	s, err := Parse([]byte(kickoff + "window: {opening_hour: 14, closing_hour: 18}\n"))
	require.NoError(t, err)

	search := s.Search(negotiation.NewCandidateSearch())
	assert.Equal(t, negotiation.CandidateSearch{OpeningHour: 14, ClosingHour: 18, StepHours: 0.5}, search)

	report, err := s.Run(context.Background(), negotiation.NewCandidateSearch())
	require.NoError(t, err)
	assert.False(t, report.Outcomes[0].Scheduled)
	assert.Equal(t, negotiation.ErrNoSuitableSlot.Error(), report.Outcomes[0].Error)
}

func TestRun_DefaultIDs(t *testing.T) {
	s, err := Parse([]byte(`
participants:
  - {id: a, available: [{date: "2024-01-15", start: 10, end: 12}]}
meetings:
  - {date: "2024-01-15", duration: 0.5, minimum_participants: 1}
  - {date: "2024-01-15", duration: 1}
`))
	require.NoError(t, err)

	report, err := s.Run(context.Background(), negotiation.NewCandidateSearch())
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 2)
	assert.Equal(t, "0", report.Outcomes[0].MeetingID)
	assert.True(t, report.Outcomes[0].Scheduled)
	assert.Equal(t, 10.0, report.Outcomes[0].TimeSlot.Start)
	// Quorum defaults to two and only one participant exists.
	assert.Equal(t, "1", report.Outcomes[1].MeetingID)
	assert.False(t, report.Outcomes[1].Scheduled)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "meetings: [{date: \"2024-01-15\", duration: 1}]\nparticipant: []\n"},
		{"no meetings", "participants: [{id: a}]\n"},
		{"empty", ""},
		{"missing participant id", "participants: [{name: A}]\nmeetings: [{date: \"2024-01-15\", duration: 1}]\n"},
		{"duplicate participant", "participants: [{id: a}, {id: a}]\nmeetings: [{date: \"2024-01-15\", duration: 1}]\n"},
		{"bad slot", "participants: [{id: a, available: [{date: \"2024-01-15\", start: 11, end: 9}]}]\nmeetings: [{date: \"2024-01-15\", duration: 1}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(kickoff), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Participants, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
