package mapper

import (
	"testing"

	coreentity "meeting-scheduler/core/entity"
	"meeting-scheduler/modules/notification/dto"
	"meeting-scheduler/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToScheduledNotifications(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	ev := &dto.MeetingScheduled{
		RunID:       "run_1",
		MeetingID:   uuid.New(),
		MeetingName: "Design review",
		Date:        "2024-01-15",
		StartTime:   9.5,
		EndTime:     11,
		Attendees:   []uuid.UUID{alice, bob},
	}

	got := ToScheduledNotifications(ev)
	require.Len(t, got, 2)
	assert.Equal(t, alice, got[0].ParticipantID)
	assert.Equal(t, bob, got[1].ParticipantID)
	for _, n := range got {
		assert.Equal(t, ev.MeetingID, n.MeetingID)
		assert.Equal(t, entity.TypeMeetingScheduled, n.Type)
		assert.Equal(t, "Meeting scheduled: Design review", n.Title)
		assert.Equal(t, "Design review is scheduled for 2024-01-15 09:30-11:00 with 2 participants", n.Message)
		assert.Equal(t, "run_1", n.Data["run_id"])
	}
}

func TestToNotificationResponse_EmptyData(t *testing.T) {
	n := entity.Notification{BaseEntity: coreentity.BaseEntity{ID: uuid.New()}, Title: "x"}
	resp := ToNotificationResponse(&n)
	assert.Equal(t, n.ID, resp.ID)
	assert.NotNil(t, resp.Data)
}

func TestToNotificationPaginationResponse(t *testing.T) {
	page := &entity.PaginatedNotifications{
		Items:      []entity.Notification{{Title: "a"}, {Title: "b"}},
		TotalItems: 5,
		PageNumber: 1,
		PageSize:   2,
	}
	resp := ToNotificationPaginationResponse(page)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 3, resp.TotalPages)
}
