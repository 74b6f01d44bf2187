package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticipantRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		req    ParticipantRequest
		fields []string
	}{
		{"valid", ParticipantRequest{Name: "Alice", Email: "alice@example.com"}, nil},
		{"missing name", ParticipantRequest{Email: "alice@example.com"}, []string{"name"}},
		{"missing email", ParticipantRequest{Name: "Alice"}, []string{"email"}},
		{"bad email", ParticipantRequest{Name: "Alice", Email: "Alice <alice@example.com>"}, []string{"email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields []string
			for _, e := range tt.req.Validate() {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestParticipantRequest_Normalize(t *testing.T) {
	req := ParticipantRequest{Name: "  Bob ", Email: " BOB@Example.COM "}
	req.Normalize()
	assert.Equal(t, "Bob", req.Name)
	assert.Equal(t, "bob@example.com", req.Email)
}

func TestTimeSlotRequest_Validate(t *testing.T) {
	assert.Empty(t, (&TimeSlotRequest{Date: "2024-01-15", StartTime: 9, EndTime: 9.5}).Validate())
	assert.Len(t, (&TimeSlotRequest{Date: "2024-02-30", StartTime: 9, EndTime: 10}).Validate(), 1)
	assert.Len(t, (&TimeSlotRequest{Date: "2024-01-15", StartTime: 10, EndTime: 10}).Validate(), 1)
	assert.Len(t, (&TimeSlotRequest{Date: "2024-01-15", StartTime: 20, EndTime: 25}).Validate(), 1)
}
