package mapper

import (
	"slices"
	"strings"

	meetingentity "meeting-scheduler/modules/meeting/entity"
	notificationdto "meeting-scheduler/modules/notification/dto"
	participantentity "meeting-scheduler/modules/participant/entity"
	"meeting-scheduler/modules/scheduling/dto"
	"meeting-scheduler/modules/scheduling/negotiation"

	"github.com/google/uuid"
)

func ToNegotiationMeeting(m *meetingentity.Meeting) negotiation.Meeting {
	return negotiation.Meeting{
		ID:                  m.ID.String(),
		Name:                m.Name,
		Date:                m.Date,
		Duration:            m.Duration,
		MinimumParticipants: m.MinimumParticipants,
	}.WithDefaults()
}

func ToNegotiationMeetings(meetings []meetingentity.Meeting) []negotiation.Meeting {
	out := make([]negotiation.Meeting, len(meetings))
	for i := range meetings {
		out[i] = ToNegotiationMeeting(&meetings[i])
	}
	return out
}

func ToNegotiationSlot(s *participantentity.TimeSlot) negotiation.TimeSlot {
	return negotiation.TimeSlot{Date: s.Date, Start: s.StartTime, End: s.EndTime}
}

// Commitments indexes already-scheduled meetings by attendee, in the shape
// negotiation.WithCommitments expects.
func Commitments(slots []meetingentity.ScheduledSlot, attendees []meetingentity.Attendee) map[uuid.UUID]map[string]negotiation.TimeSlot {
	byMeeting := make(map[uuid.UUID]negotiation.TimeSlot, len(slots))
	for _, s := range slots {
		byMeeting[s.MeetingID] = negotiation.TimeSlot{Date: s.Date, Start: s.StartTime, End: s.EndTime}
	}

	out := make(map[uuid.UUID]map[string]negotiation.TimeSlot)
	for _, a := range attendees {
		slot, ok := byMeeting[a.MeetingID]
		if !ok {
			continue
		}
		if out[a.ParticipantID] == nil {
			out[a.ParticipantID] = make(map[string]negotiation.TimeSlot)
		}
		out[a.ParticipantID][a.MeetingID.String()] = slot
	}
	return out
}

// ToNegotiationParticipants keeps the input order, which is the order
// participants answer in.
func ToNegotiationParticipants(
	participants []participantentity.Participant,
	slots map[uuid.UUID][]participantentity.TimeSlot,
	commitments map[uuid.UUID]map[string]negotiation.TimeSlot,
) []*negotiation.Participant {
	out := make([]*negotiation.Participant, 0, len(participants))
	for _, p := range participants {
		available := make([]negotiation.TimeSlot, 0, len(slots[p.ID]))
		for i := range slots[p.ID] {
			available = append(available, ToNegotiationSlot(&slots[p.ID][i]))
		}
		out = append(out, negotiation.NewParticipant(p.ID.String(), available,
			negotiation.WithName(p.Name),
			negotiation.WithCommitments(commitments[p.ID]),
		))
	}
	return out
}

func ToOutcomeResponse(o negotiation.MeetingOutcome) dto.OutcomeResponse {
	resp := dto.OutcomeResponse{
		MeetingID:    o.MeetingID,
		Name:         o.Name,
		Status:       dto.OutcomeFailed,
		TimeSlot:     o.TimeSlot,
		Participants: o.Participants,
		Error:        o.Error,
		Attempts:     o.Attempts,
	}
	if o.Scheduled {
		resp.Status = dto.OutcomeScheduled
	}
	return resp
}

// ToOutcomeResponses orders outcomes like meetings; meetings without an
// outcome are left out.
func ToOutcomeResponses(meetings []negotiation.Meeting, outcomes map[string]negotiation.MeetingOutcome) []dto.OutcomeResponse {
	out := make([]dto.OutcomeResponse, 0, len(outcomes))
	for _, m := range meetings {
		if o, ok := outcomes[m.ID]; ok {
			out = append(out, ToOutcomeResponse(o))
		}
	}
	return out
}

// ToScheduledSlot converts a scheduled outcome into its stored form and the
// attendee ids. ok is false when the outcome is not scheduled or carries ids
// that are not uuids.
func ToScheduledSlot(runID string, o negotiation.MeetingOutcome) (slot *meetingentity.ScheduledSlot, attendees []uuid.UUID, ok bool) {
	if !o.Scheduled || o.TimeSlot == nil {
		return nil, nil, false
	}
	meetingID, err := uuid.Parse(o.MeetingID)
	if err != nil {
		return nil, nil, false
	}
	attendees = make([]uuid.UUID, 0, len(o.Participants))
	for _, p := range o.Participants {
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, nil, false
		}
		attendees = append(attendees, id)
	}
	return &meetingentity.ScheduledSlot{
		MeetingID: meetingID,
		RunID:     runID,
		Date:      o.TimeSlot.Date,
		StartTime: o.TimeSlot.Start,
		EndTime:   o.TimeSlot.End,
	}, attendees, true
}

func ToMeetingScheduled(name string, slot *meetingentity.ScheduledSlot, attendees []uuid.UUID) *notificationdto.MeetingScheduled {
	return &notificationdto.MeetingScheduled{
		RunID:       slot.RunID,
		MeetingID:   slot.MeetingID,
		MeetingName: name,
		Date:        slot.Date,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Attendees:   attendees,
	}
}

func ToPlaceholders(meetings []meetingentity.Meeting, status string) []dto.MeetingPlaceholder {
	out := make([]dto.MeetingPlaceholder, len(meetings))
	for i, m := range meetings {
		out[i] = dto.MeetingPlaceholder{MeetingID: m.ID, Name: m.Name, Status: status}
	}
	return out
}

func ToMeetingStatusResponse(
	m *meetingentity.Meeting,
	slot *meetingentity.ScheduledSlot,
	attendees []uuid.UUID,
	names map[uuid.UUID]string,
) dto.MeetingStatusResponse {
	resp := dto.MeetingStatusResponse{
		MeetingID:    m.ID,
		Name:         m.Name,
		Date:         m.Date,
		Status:       string(m.Status),
		Participants: []dto.AttendeeResponse{},
	}
	if m.LastError != nil {
		resp.Error = *m.LastError
	}
	if slot != nil {
		resp.TimeSlot = &negotiation.TimeSlot{Date: slot.Date, Start: slot.StartTime, End: slot.EndTime}
		for _, id := range attendees {
			resp.Participants = append(resp.Participants, dto.AttendeeResponse{ID: id, Name: names[id]})
		}
		slices.SortFunc(resp.Participants, func(a, b dto.AttendeeResponse) int {
			return strings.Compare(a.Name, b.Name)
		})
	}
	return resp
}
