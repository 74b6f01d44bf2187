package mapper

import (
	coredto "meeting-scheduler/core/dto"
	"meeting-scheduler/modules/participant/dto"
	"meeting-scheduler/modules/participant/entity"

	"github.com/google/uuid"
)

func ToParticipantEntity(req *dto.ParticipantRequest) *entity.Participant {
	p := &entity.Participant{
		Name:     req.Name,
		Email:    req.Email,
		IsActive: true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	return p
}

func ToTimeSlotEntity(participantID uuid.UUID, req *dto.TimeSlotRequest) *entity.TimeSlot {
	return &entity.TimeSlot{
		ParticipantID: participantID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	}
}

func ToTimeSlotResponse(slot *entity.TimeSlot) dto.TimeSlotResponse {
	return dto.TimeSlotResponse{
		ID:            slot.ID,
		ParticipantID: slot.ParticipantID,
		Date:          slot.Date,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
	}
}

func ToTimeSlotResponses(slots []entity.TimeSlot) []dto.TimeSlotResponse {
	out := make([]dto.TimeSlotResponse, len(slots))
	for i := range slots {
		out[i] = ToTimeSlotResponse(&slots[i])
	}
	return out
}

func ToParticipantResponse(p *entity.Participant, slots []entity.TimeSlot) *dto.ParticipantResponse {
	return &dto.ParticipantResponse{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		IsActive:       p.IsActive,
		AvailableSlots: ToTimeSlotResponses(slots),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToParticipantPaginationResponse attaches each participant's slots from
// slotsByParticipant.
func ToParticipantPaginationResponse(page *entity.PaginatedParticipants, slotsByParticipant map[uuid.UUID][]entity.TimeSlot) *dto.PaginatedParticipantResponse {
	if page == nil {
		return &dto.PaginatedParticipantResponse{Items: []dto.ParticipantResponse{}}
	}
	return coredto.NewPagination(page.Items, page.TotalItems, page.PageNumber, page.PageSize,
		func(p *entity.Participant) dto.ParticipantResponse {
			return *ToParticipantResponse(p, slotsByParticipant[p.ID])
		})
}
