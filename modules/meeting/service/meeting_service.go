package service

import (
	"context"
	stderrors "errors"

	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/params"
	"meeting-scheduler/modules/meeting/dto"
	"meeting-scheduler/modules/meeting/mapper"
	"meeting-scheduler/modules/meeting/repository"

	"github.com/google/uuid"
)

// MeetingServiceInterface defines the service contract
type MeetingServiceInterface interface {
	CreateMeeting(ctx context.Context, req *dto.MeetingRequest) (*dto.MeetingResponse, *errors.AppError)
	GetMeeting(ctx context.Context, id uuid.UUID) (*dto.MeetingResponse, *errors.AppError)
	GetMeetings(ctx context.Context, params params.QueryParams) (*dto.PaginatedMeetingResponse, *errors.AppError)
	UpdateMeeting(ctx context.Context, id uuid.UUID, req *dto.MeetingRequest) (*dto.MeetingResponse, *errors.AppError)
	DeleteMeeting(ctx context.Context, id uuid.UUID) *errors.AppError
}

// MeetingService handles meeting business logic
type MeetingService struct {
	repo repository.MeetingRepositoryInterface
}

func NewMeetingService(repo repository.MeetingRepositoryInterface) MeetingServiceInterface {
	return &MeetingService{repo: repo}
}

// CreateMeeting stores a pending meeting with its invitations
func (s *MeetingService) CreateMeeting(ctx context.Context, req *dto.MeetingRequest) (*dto.MeetingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	logger.Info("MeetingService:CreateMeeting:Start", "name", req.Name, "date", req.Date, "duration", req.Duration)
	ids := uniqueIDs(req.ParticipantIDs)
	created, err := s.repo.Create(ctx, mapper.ToMeetingEntity(req), ids)
	if err != nil {
		if stderrors.Is(err, repository.ErrUnknownParticipant) {
			return nil, errors.NewAppError(errors.ErrInvalidRequestData, "participant_ids references an unknown participant", err)
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create meeting failed", err)
	}
	logger.Info("MeetingService:CreateMeeting:Success", "meeting_id", created.ID)

	rel := mapper.Relations{ParticipantIDs: map[uuid.UUID][]uuid.UUID{created.ID: ids}}
	return mapper.ToMeetingResponse(created, rel), nil
}

func (s *MeetingService) GetMeeting(ctx context.Context, id uuid.UUID) (*dto.MeetingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get meeting failed", err)
	}
	if m == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "meeting not found", nil)
	}

	rel, appErr := s.relations(ctx, []uuid.UUID{id})
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToMeetingResponse(m, rel), nil
}

func (s *MeetingService) GetMeetings(ctx context.Context, params params.QueryParams) (*dto.PaginatedMeetingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	logger.Info("MeetingService:GetMeetings:Request", "page_number", params.PageNumber, "page_size", params.PageSize, "search", params.Search)
	page, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get meetings failed", err)
	}

	ids := make([]uuid.UUID, len(page.Items))
	for i, m := range page.Items {
		ids[i] = m.ID
	}
	rel, appErr := s.relations(ctx, ids)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToMeetingPaginationResponse(page, rel), nil
}

// UpdateMeeting replaces the meeting definition. The meeting goes back to
// pending and any committed slot is released.
func (s *MeetingService) UpdateMeeting(ctx context.Context, id uuid.UUID, req *dto.MeetingRequest) (*dto.MeetingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var ids []uuid.UUID
	if req.ParticipantIDs != nil {
		ids = uniqueIDs(req.ParticipantIDs)
	}
	updated, err := s.repo.Update(ctx, id, mapper.ToMeetingEntity(req), ids)
	if err != nil {
		if stderrors.Is(err, repository.ErrUnknownParticipant) {
			return nil, errors.NewAppError(errors.ErrInvalidRequestData, "participant_ids references an unknown participant", err)
		}
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update meeting failed", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "meeting not found", nil)
	}
	logger.Info("MeetingService:UpdateMeeting:Success", "meeting_id", id)

	rel, appErr := s.relations(ctx, []uuid.UUID{id})
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToMeetingResponse(updated, rel), nil
}

func (s *MeetingService) DeleteMeeting(ctx context.Context, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete meeting failed", err)
	}
	if !deleted {
		return errors.NewAppError(errors.ErrNotFound, "meeting not found", nil)
	}
	logger.Info("MeetingService:DeleteMeeting:Success", "meeting_id", id)
	return nil
}

func (s *MeetingService) relations(ctx context.Context, ids []uuid.UUID) (mapper.Relations, *errors.AppError) {
	var (
		rel mapper.Relations
		err error
	)
	if rel.ParticipantIDs, err = s.repo.GetParticipantIDs(ctx, ids); err != nil {
		return rel, errors.NewAppError(errors.ErrGetFailed, "get meeting participants failed", err)
	}
	if rel.Slots, err = s.repo.GetScheduledSlots(ctx, ids); err != nil {
		return rel, errors.NewAppError(errors.ErrGetFailed, "get scheduled slots failed", err)
	}
	if rel.Attendees, err = s.repo.GetAttendees(ctx, ids); err != nil {
		return rel, errors.NewAppError(errors.ErrGetFailed, "get attendees failed", err)
	}
	return rel, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
