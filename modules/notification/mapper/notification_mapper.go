package mapper

import (
	"fmt"

	coredto "meeting-scheduler/core/dto"
	"meeting-scheduler/modules/notification/dto"
	"meeting-scheduler/modules/notification/entity"
	"meeting-scheduler/modules/scheduling/negotiation"
)

func ToNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	data := map[string]any(n.Data)
	if data == nil {
		data = map[string]any{}
	}
	return dto.NotificationResponse{
		ID:        n.ID,
		MeetingID: n.MeetingID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func ToNotificationPaginationResponse(page *entity.PaginatedNotifications) *dto.PaginatedNotificationResponse {
	return coredto.NewPagination(page.Items, page.TotalItems, page.PageNumber, page.PageSize, ToNotificationResponse)
}

// ToScheduledNotifications builds one notification per attendee.
func ToScheduledNotifications(ev *dto.MeetingScheduled) []entity.Notification {
	slot := negotiation.TimeSlot{Date: ev.Date, Start: ev.StartTime, End: ev.EndTime}
	out := make([]entity.Notification, 0, len(ev.Attendees))
	for _, pid := range ev.Attendees {
		out = append(out, entity.Notification{
			ParticipantID: pid,
			MeetingID:     ev.MeetingID,
			Type:          entity.TypeMeetingScheduled,
			Title:         "Meeting scheduled: " + ev.MeetingName,
			Message:       fmt.Sprintf("%s is scheduled for %s with %d participants", ev.MeetingName, slot, len(ev.Attendees)),
			Data: entity.JSONB{
				"run_id":     ev.RunID,
				"date":       ev.Date,
				"start_time": ev.StartTime,
				"end_time":   ev.EndTime,
			},
		})
	}
	return out
}
