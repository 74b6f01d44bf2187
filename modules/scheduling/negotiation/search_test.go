package negotiation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateSearch_Default(t *testing.T) {
	cs := NewCandidateSearch()
	require.NoError(t, cs.Validate())

	m := Meeting{Date: day, Duration: 1}
	first := cs.Opening(m)
	assert.Equal(t, slot(9, 10), first)

	next, ok := cs.Next(first, m.Duration)
	require.True(t, ok)
	assert.Equal(t, slot(9.5, 10.5), next)

	last, ok := cs.Next(slot(16, 17), m.Duration)
	require.True(t, ok)
	assert.Equal(t, slot(16.5, 17.5), last)

	_, ok = cs.Next(last, m.Duration)
	assert.False(t, ok)
}

func TestCandidateSearch_Candidates(t *testing.T) {
	cs := NewCandidateSearch()
	candidates := cs.Candidates(Meeting{Date: day, Duration: 2})

	require.Len(t, candidates, 16)
	assert.Equal(t, 16, cs.MaxAttempts())
	assert.Equal(t, slot(9, 11), candidates[0])
	assert.Equal(t, slot(16.5, 18.5), candidates[15])
}

func TestCandidateSearch_CustomWindow(t *testing.T) {
	cs := CandidateSearch{OpeningHour: 8, ClosingHour: 10, StepHours: 1}
	require.NoError(t, cs.Validate())

	candidates := cs.Candidates(Meeting{Date: day, Duration: 0.5})
	assert.Equal(t, []TimeSlot{slot(8, 8.5), slot(9, 9.5)}, candidates)
	assert.Equal(t, 2, cs.MaxAttempts())
}

func TestCandidateSearch_Validate(t *testing.T) {
	assert.Error(t, CandidateSearch{OpeningHour: 9, ClosingHour: 17}.Validate())
	assert.Error(t, CandidateSearch{OpeningHour: 17, ClosingHour: 9, StepHours: 0.5}.Validate())
	assert.Error(t, CandidateSearch{OpeningHour: -1, ClosingHour: 9, StepHours: 0.5}.Validate())
	assert.Error(t, CandidateSearch{OpeningHour: 9, ClosingHour: 25, StepHours: 0.5}.Validate())

	invalid := CandidateSearch{OpeningHour: 9, ClosingHour: 17}
	assert.Len(t, invalid.Candidates(Meeting{Date: day, Duration: 1}), 1)
}
