package mapper

import (
	"meeting-scheduler/core/constants"
	coredto "meeting-scheduler/core/dto"
	"meeting-scheduler/modules/meeting/dto"
	"meeting-scheduler/modules/meeting/entity"

	"github.com/google/uuid"
)

// Relations carries what a meeting response needs besides the row itself.
type Relations struct {
	ParticipantIDs map[uuid.UUID][]uuid.UUID
	Slots          map[uuid.UUID]entity.ScheduledSlot
	Attendees      map[uuid.UUID][]uuid.UUID
}

func ToMeetingEntity(req *dto.MeetingRequest) *entity.Meeting {
	quorum := req.MinimumParticipants
	if quorum == 0 {
		quorum = constants.DefaultMinimumParticipants
	}
	return &entity.Meeting{
		Name:                req.Name,
		Date:                req.Date,
		Duration:            req.Duration,
		MinimumParticipants: quorum,
		Status:              entity.MeetingStatusPending,
	}
}

func ToMeetingResponse(m *entity.Meeting, rel Relations) *dto.MeetingResponse {
	resp := &dto.MeetingResponse{
		ID:                  m.ID,
		Name:                m.Name,
		Date:                m.Date,
		Duration:            m.Duration,
		MinimumParticipants: m.MinimumParticipants,
		Status:              string(m.Status),
		ParticipantIDs:      rel.ParticipantIDs[m.ID],
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if resp.ParticipantIDs == nil {
		resp.ParticipantIDs = []uuid.UUID{}
	}
	if m.LastError != nil {
		resp.Error = *m.LastError
	}
	if slot, ok := rel.Slots[m.ID]; ok {
		resp.ScheduledSlot = &dto.ScheduledSlotResponse{
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			RunID:     slot.RunID,
		}
		resp.Attendees = rel.Attendees[m.ID]
	}
	return resp
}

func ToMeetingPaginationResponse(page *entity.PaginatedMeetings, rel Relations) *dto.PaginatedMeetingResponse {
	if page == nil {
		return &dto.PaginatedMeetingResponse{Items: []dto.MeetingResponse{}}
	}
	return coredto.NewPagination(page.Items, page.TotalItems, page.PageNumber, page.PageSize,
		func(m *entity.Meeting) dto.MeetingResponse {
			return *ToMeetingResponse(m, rel)
		})
}
