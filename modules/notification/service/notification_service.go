package service

import (
	"context"

	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/params"
	"meeting-scheduler/modules/notification/dto"
	"meeting-scheduler/modules/notification/mapper"
	"meeting-scheduler/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationServiceInterface interface {
	GetNotifications(ctx context.Context, participantID uuid.UUID, unreadOnly bool, params params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError)
	CountUnread(ctx context.Context, participantID uuid.UUID) (*dto.UnreadCountResponse, *errors.AppError)
	MarkAsRead(ctx context.Context, participantID uuid.UUID, ids []uuid.UUID) (*dto.MarkAsReadResponse, *errors.AppError)
	MarkAllAsRead(ctx context.Context, participantID uuid.UUID) (*dto.MarkAsReadResponse, *errors.AppError)
	NotifyMeetingScheduled(ctx context.Context, ev *dto.MeetingScheduled) error
}

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

var _ NotificationServiceInterface = (*NotificationService)(nil)

func (s *NotificationService) GetNotifications(ctx context.Context, participantID uuid.UUID, unreadOnly bool, params params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.ListByParticipant(ctx, participantID, unreadOnly, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get notifications failed", err)
	}
	return mapper.ToNotificationPaginationResponse(page), nil
}

func (s *NotificationService) CountUnread(ctx context.Context, participantID uuid.UUID) (*dto.UnreadCountResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	count, err := s.repo.CountUnread(ctx, participantID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "count unread notifications failed", err)
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, participantID uuid.UUID, ids []uuid.UUID) (*dto.MarkAsReadResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	n, err := s.repo.MarkAsRead(ctx, participantID, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "mark notifications read failed", err)
	}
	return &dto.MarkAsReadResponse{Updated: n}, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, participantID uuid.UUID) (*dto.MarkAsReadResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	n, err := s.repo.MarkAllAsRead(ctx, participantID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "mark notifications read failed", err)
	}
	return &dto.MarkAsReadResponse{Updated: n}, nil
}

// NotifyMeetingScheduled delivers the commit notice of a meeting to each of
// its attendees.
func (s *NotificationService) NotifyMeetingScheduled(ctx context.Context, ev *dto.MeetingScheduled) error {
	notifications := mapper.ToScheduledNotifications(ev)
	if err := s.repo.CreateMany(ctx, notifications); err != nil {
		return err
	}
	logger.Info("NotificationService:NotifyMeetingScheduled", "meeting_id", ev.MeetingID, "run_id", ev.RunID, "attendees", len(notifications))
	return nil
}
