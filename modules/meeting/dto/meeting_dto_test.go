package dto

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMeetingRequest_Validate(t *testing.T) {
	valid := MeetingRequest{Name: "Team Sync", Date: "2024-01-15", Duration: 1.5}

	tests := []struct {
		name   string
		mutate func(r *MeetingRequest)
		field  string
	}{
		{"valid", func(*MeetingRequest) {}, ""},
		{"missing name", func(r *MeetingRequest) { r.Name = "" }, "name"},
		{"bad date", func(r *MeetingRequest) { r.Date = "Jan 15" }, "date"},
		{"zero duration", func(r *MeetingRequest) { r.Duration = 0 }, "duration"},
		{"nan duration", func(r *MeetingRequest) { r.Duration = math.NaN() }, "duration"},
		{"off-grid duration", func(r *MeetingRequest) { r.Duration = 0.75 }, "duration"},
		{"negative quorum", func(r *MeetingRequest) { r.MinimumParticipants = -1 }, "minimum_participants"},
		{"nil participant", func(r *MeetingRequest) { r.ParticipantIDs = []uuid.UUID{uuid.Nil} }, "participant_ids"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			errs := req.Validate()
			if tt.field == "" {
				assert.Empty(t, errs)
				return
			}
			if assert.Len(t, errs, 1) {
				assert.Equal(t, tt.field, errs[0].Field)
			}
		})
	}
}
