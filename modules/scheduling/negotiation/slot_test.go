package negotiation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const day = "2024-01-15"

func slot(start, end float64) TimeSlot {
	return TimeSlot{Date: day, Start: start, End: end}
}

func TestTimeSlot_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     TimeSlot
		required float64
		want     bool
	}{
		{"partial overlap of one hour", slot(9, 11), slot(10, 12), 1, true},
		{"partial overlap too short", slot(9, 11), slot(10, 12), 2, false},
		{"containment", slot(9, 17), slot(10, 11), 1, true},
		{"identical", slot(9, 10), slot(9, 10), 1, true},
		{"half hour short", slot(9, 10), slot(9.5, 10.5), 1, false},
		{"disjoint", slot(9, 10), slot(11, 12), 0.5, false},
		{"different date", slot(9, 11), TimeSlot{Date: "2024-01-16", Start: 9, End: 11}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b, tt.required))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a, tt.required))
		})
	}
}

func TestTimeSlot_Basics(t *testing.T) {
	s := slot(9.5, 11)
	assert.Equal(t, 1.5, s.Duration())
	assert.Equal(t, "2024-01-15_9.5", s.Key())
	assert.Equal(t, "2024-01-15 09:30-11:00", s.String())
	assert.NoError(t, s.Validate())

	assert.ErrorIs(t, slot(11, 9).Validate(), ErrInvalidSlot)
	assert.ErrorIs(t, TimeSlot{Start: 9, End: 10}.Validate(), ErrInvalidSlot)
	assert.NoError(t, slot(9, 9).Validate())
}

func TestMeeting_Validate(t *testing.T) {
	valid := Meeting{ID: "m1", Name: "standup", Date: day, Duration: 1, MinimumParticipants: 2}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Meeting)
	}{
		{"zero duration", func(m *Meeting) { m.Duration = 0 }},
		{"negative duration", func(m *Meeting) { m.Duration = -1 }},
		{"zero quorum", func(m *Meeting) { m.MinimumParticipants = 0 }},
		{"missing date", func(m *Meeting) { m.Date = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			assert.ErrorIs(t, m.Validate(), ErrInvalidMeeting)
		})
	}
}

func TestMeeting_WithDefaults(t *testing.T) {
	m := Meeting{Date: day, Duration: 1}.WithDefaults()
	assert.Equal(t, DefaultMinimumParticipants, m.MinimumParticipants)

	m = Meeting{Date: day, Duration: 1, MinimumParticipants: 3}.WithDefaults()
	assert.Equal(t, 3, m.MinimumParticipants)
}
