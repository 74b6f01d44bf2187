package repository

import (
	"context"

	"meeting-scheduler/core/database"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/params"
	"meeting-scheduler/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type NotificationRepositoryInterface interface {
	CreateMany(ctx context.Context, notifications []entity.Notification) error
	ListByParticipant(ctx context.Context, participantID uuid.UUID, unreadOnly bool, params params.QueryParams) (*entity.PaginatedNotifications, error)
	MarkAsRead(ctx context.Context, participantID uuid.UUID, ids []uuid.UUID) (int64, error)
	MarkAllAsRead(ctx context.Context, participantID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, participantID uuid.UUID) (int, error)
}

type NotificationRepository struct {
	DB database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

var _ NotificationRepositoryInterface = (*NotificationRepository)(nil)

const notificationColumns = `id, participant_id, meeting_id, type, title, message, data, is_read, created_at, updated_at`

// CreateMany inserts every notification in one statement.
func (r *NotificationRepository) CreateMany(ctx context.Context, notifications []entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	query := `
		INSERT INTO notifications (participant_id, meeting_id, type, title, message, data)
		VALUES (:participant_id, :meeting_id, :type, :title, :message, :data)`
	if _, err := r.DB.NamedExecContext(ctx, query, notifications); err != nil {
		logger.Error("NotificationRepository:CreateMany", err, "count", len(notifications))
		return err
	}
	return nil
}

func (r *NotificationRepository) ListByParticipant(ctx context.Context, participantID uuid.UUID, unreadOnly bool, params params.QueryParams) (*entity.PaginatedNotifications, error) {
	where := ` FROM notifications WHERE participant_id = $1`
	if unreadOnly {
		where += ` AND is_read = false`
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*)`+where, participantID); err != nil {
		logger.Error("NotificationRepository:ListByParticipant:Count", err)
		return nil, err
	}

	query := `SELECT ` + notificationColumns + where + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	items := []entity.Notification{}
	if err := r.DB.SelectContext(ctx, &items, query, participantID, params.PageSize, params.Offset()); err != nil {
		logger.Error("NotificationRepository:ListByParticipant:Select", err)
		return nil, err
	}

	return &entity.PaginatedNotifications{
		Items:      items,
		TotalItems: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

// MarkAsRead only touches notifications owned by participantID and reports
// how many changed.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, participantID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`UPDATE notifications SET is_read = true, updated_at = NOW()
		WHERE participant_id = ? AND is_read = false AND id IN (?)`, participantID, ids)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.SQLx().ExecContext(ctx, r.DB.SQLx().Rebind(query), args...)
	if err != nil {
		logger.Error("NotificationRepository:MarkAsRead", err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, participantID uuid.UUID) (int64, error) {
	res, err := r.DB.SQLx().ExecContext(ctx, `UPDATE notifications SET is_read = true, updated_at = NOW()
		WHERE participant_id = $1 AND is_read = false`, participantID)
	if err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead", err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, participantID uuid.UUID) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE participant_id = $1 AND is_read = false`, participantID)
	if err != nil {
		logger.Error("NotificationRepository:CountUnread", err)
		return 0, err
	}
	return count, nil
}
