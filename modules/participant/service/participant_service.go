package service

import (
	"context"
	stderrors "errors"

	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/params"
	"meeting-scheduler/modules/participant/dto"
	"meeting-scheduler/modules/participant/entity"
	"meeting-scheduler/modules/participant/mapper"
	"meeting-scheduler/modules/participant/repository"

	"github.com/google/uuid"
)

type ParticipantServiceInterface interface {
	CreateParticipant(ctx context.Context, req *dto.ParticipantRequest) (*dto.ParticipantResponse, *errors.AppError)
	GetParticipant(ctx context.Context, id uuid.UUID) (*dto.ParticipantResponse, *errors.AppError)
	GetParticipants(ctx context.Context, params params.QueryParams) (*dto.PaginatedParticipantResponse, *errors.AppError)
	UpdateParticipant(ctx context.Context, id uuid.UUID, req *dto.ParticipantRequest) (*dto.ParticipantResponse, *errors.AppError)
	DeleteParticipant(ctx context.Context, id uuid.UUID) *errors.AppError

	AddTimeSlot(ctx context.Context, participantID uuid.UUID, req *dto.TimeSlotRequest) (*dto.TimeSlotResponse, *errors.AppError)
	GetTimeSlots(ctx context.Context, participantID uuid.UUID) ([]dto.TimeSlotResponse, *errors.AppError)
	DeleteTimeSlot(ctx context.Context, participantID, slotID uuid.UUID) *errors.AppError
}

type ParticipantService struct {
	repo repository.ParticipantRepositoryInterface
}

func NewParticipantService(repo repository.ParticipantRepositoryInterface) ParticipantServiceInterface {
	return &ParticipantService{repo: repo}
}

func (s *ParticipantService) CreateParticipant(ctx context.Context, req *dto.ParticipantRequest) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	created, err := s.repo.Create(ctx, mapper.ToParticipantEntity(req))
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "email already registered", err)
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create participant failed", err)
	}
	logger.Info("ParticipantService:CreateParticipant:Success", "participant_id", created.ID)
	return mapper.ToParticipantResponse(created, nil), nil
}

func (s *ParticipantService) GetParticipant(ctx context.Context, id uuid.UUID) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, appErr := s.mustGet(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	slots, err := s.repo.GetTimeSlots(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get time slots failed", err)
	}
	return mapper.ToParticipantResponse(p, slots), nil
}

func (s *ParticipantService) GetParticipants(ctx context.Context, params params.QueryParams) (*dto.PaginatedParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	logger.Info("ParticipantService:GetParticipants:Request", "page_number", params.PageNumber, "page_size", params.PageSize, "search", params.Search)
	page, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get participants failed", err)
	}

	ids := make([]uuid.UUID, len(page.Items))
	for i, p := range page.Items {
		ids[i] = p.ID
	}
	slots, err := s.repo.GetTimeSlotsByParticipants(ctx, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get time slots failed", err)
	}
	return mapper.ToParticipantPaginationResponse(page, slots), nil
}

func (s *ParticipantService) UpdateParticipant(ctx context.Context, id uuid.UUID, req *dto.ParticipantRequest) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	current, appErr := s.mustGet(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	next := mapper.ToParticipantEntity(req)
	if req.IsActive == nil {
		next.IsActive = current.IsActive
	}

	updated, err := s.repo.Update(ctx, id, next)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "email already registered", err)
		}
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update participant failed", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "participant not found", nil)
	}

	slots, err := s.repo.GetTimeSlots(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get time slots failed", err)
	}
	return mapper.ToParticipantResponse(updated, slots), nil
}

func (s *ParticipantService) DeleteParticipant(ctx context.Context, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete participant failed", err)
	}
	if !deleted {
		return errors.NewAppError(errors.ErrNotFound, "participant not found", nil)
	}
	logger.Info("ParticipantService:DeleteParticipant:Success", "participant_id", id)
	return nil
}

func (s *ParticipantService) AddTimeSlot(ctx context.Context, participantID uuid.UUID, req *dto.TimeSlotRequest) (*dto.TimeSlotResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.mustGet(ctx, participantID); appErr != nil {
		return nil, appErr
	}
	created, err := s.repo.AddTimeSlot(ctx, mapper.ToTimeSlotEntity(participantID, req))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create time slot failed", err)
	}
	resp := mapper.ToTimeSlotResponse(created)
	return &resp, nil
}

func (s *ParticipantService) GetTimeSlots(ctx context.Context, participantID uuid.UUID) ([]dto.TimeSlotResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.mustGet(ctx, participantID); appErr != nil {
		return nil, appErr
	}
	slots, err := s.repo.GetTimeSlots(ctx, participantID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get time slots failed", err)
	}
	return mapper.ToTimeSlotResponses(slots), nil
}

func (s *ParticipantService) DeleteTimeSlot(ctx context.Context, participantID, slotID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	deleted, err := s.repo.DeleteTimeSlot(ctx, participantID, slotID)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete time slot failed", err)
	}
	if !deleted {
		return errors.NewAppError(errors.ErrNotFound, "time slot not found", nil)
	}
	return nil
}

func (s *ParticipantService) mustGet(ctx context.Context, id uuid.UUID) (*entity.Participant, *errors.AppError) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get participant failed", err)
	}
	if p == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "participant not found", nil)
	}
	return p, nil
}
