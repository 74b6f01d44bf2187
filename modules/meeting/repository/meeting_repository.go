package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"meeting-scheduler/core/database"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/params"
	"meeting-scheduler/modules/meeting/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrUnknownParticipant = errors.New("unknown participant")

// MeetingRepositoryInterface defines the repository contract
type MeetingRepositoryInterface interface {
	// Meetings
	Create(ctx context.Context, m *entity.Meeting, participantIDs []uuid.UUID) (*entity.Meeting, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error)
	List(ctx context.Context, params params.QueryParams) (*entity.PaginatedMeetings, error)
	ListAll(ctx context.Context) ([]entity.Meeting, error)
	ListByStatus(ctx context.Context, statuses ...entity.MeetingStatus) ([]entity.Meeting, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Meeting, error)
	Update(ctx context.Context, id uuid.UUID, m *entity.Meeting, participantIDs []uuid.UUID) (*entity.Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// Invitations (meeting_participants)
	GetParticipantIDs(ctx context.Context, meetingIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)

	// Schedule (scheduled_slots, meeting_attendees)
	GetScheduledSlots(ctx context.Context, meetingIDs []uuid.UUID) (map[uuid.UUID]entity.ScheduledSlot, error)
	GetAttendees(ctx context.Context, meetingIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
	ListScheduledSlots(ctx context.Context) ([]entity.ScheduledSlot, error)
	ListAttendees(ctx context.Context) ([]entity.Attendee, error)
	MarkScheduled(ctx context.Context, slot *entity.ScheduledSlot, attendees []uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

// MeetingRepository handles meeting database operations
type MeetingRepository struct {
	DB database.IDatabase
}

func NewMeetingRepository(db database.IDatabase) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

var _ MeetingRepositoryInterface = (*MeetingRepository)(nil)

const meetingColumns = `id, name, date, duration, minimum_participants, status, last_error, created_at, updated_at`

// ===================== Meetings =====================

func (r *MeetingRepository) Create(ctx context.Context, m *entity.Meeting, participantIDs []uuid.UUID) (*entity.Meeting, error) {
	query := `
		INSERT INTO meetings (name, date, duration, minimum_participants, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + meetingColumns

	var created entity.Meeting
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &created, query,
			m.Name, m.Date, m.Duration, m.MinimumParticipants, entity.MeetingStatusPending); err != nil {
			return err
		}
		return invite(ctx, tx, created.ID, participantIDs)
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrUnknownParticipant
		}
		logger.Error("MeetingRepository:Create", err)
		return nil, err
	}
	return &created, nil
}

func (r *MeetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`

	var m entity.Meeting
	err := r.DB.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetByID", err)
		return nil, err
	}
	return &m, nil
}

func (r *MeetingRepository) List(ctx context.Context, params params.QueryParams) (*entity.PaginatedMeetings, error) {
	var (
		where string
		args  []any
	)
	if params.Search != "" {
		where = ` WHERE name ILIKE $1`
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM meetings`+where, args...); err != nil {
		logger.Error("MeetingRepository:List:Count", err)
		return nil, err
	}

	query := `SELECT ` + meetingColumns + ` FROM meetings` + where +
		fmt.Sprintf(` ORDER BY date, created_at LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	var items []entity.Meeting
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		logger.Error("MeetingRepository:List:Select", err)
		return nil, err
	}

	return &entity.PaginatedMeetings{
		Items:      items,
		TotalItems: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *MeetingRepository) ListAll(ctx context.Context) ([]entity.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings ORDER BY created_at`

	items := []entity.Meeting{}
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		logger.Error("MeetingRepository:ListAll", err)
		return nil, err
	}
	return items, nil
}

// ListByStatus returns meetings in creation order, which is also the order
// a scheduling run negotiates them in.
func (r *MeetingRepository) ListByStatus(ctx context.Context, statuses ...entity.MeetingStatus) ([]entity.Meeting, error) {
	items := []entity.Meeting{}
	if len(statuses) == 0 {
		return items, nil
	}
	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = string(st)
	}

	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE status = ANY($1) ORDER BY created_at`
	if err := r.DB.SelectContext(ctx, &items, query, pq.Array(names)); err != nil {
		logger.Error("MeetingRepository:ListByStatus", err, "statuses", names)
		return nil, err
	}
	return items, nil
}

func (r *MeetingRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Meeting, error) {
	items := []entity.Meeting{}
	if len(ids) == 0 {
		return items, nil
	}

	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = ANY($1::uuid[]) ORDER BY created_at`
	if err := r.DB.SelectContext(ctx, &items, query, database.UUIDArray(ids)); err != nil {
		logger.Error("MeetingRepository:ListByIDs", err)
		return nil, err
	}
	return items, nil
}

// Update rewrites the meeting and drops any previous schedule, so the next
// run negotiates it again. A nil participantIDs keeps the invitations.
func (r *MeetingRepository) Update(ctx context.Context, id uuid.UUID, m *entity.Meeting, participantIDs []uuid.UUID) (*entity.Meeting, error) {
	query := `
		UPDATE meetings
		SET name = $2, date = $3, duration = $4, minimum_participants = $5,
		    status = $6, last_error = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + meetingColumns

	var updated entity.Meeting
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &updated, query,
			id, m.Name, m.Date, m.Duration, m.MinimumParticipants, entity.MeetingStatusPending); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM scheduled_slots WHERE meeting_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM meeting_attendees WHERE meeting_id = $1`, id); err != nil {
			return err
		}
		if participantIDs == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM meeting_participants WHERE meeting_id = $1`, id); err != nil {
			return err
		}
		return invite(ctx, tx, id, participantIDs)
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		case database.IsForeignKeyViolation(err):
			return nil, ErrUnknownParticipant
		}
		logger.Error("MeetingRepository:Update", err)
		return nil, err
	}
	return &updated, nil
}

func (r *MeetingRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.DB.SQLx().ExecContext(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		logger.Error("MeetingRepository:Delete", err)
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		logger.Error("MeetingRepository:Delete:RowsAffected", err)
		return false, err
	}
	return rows > 0, nil
}

func invite(ctx context.Context, tx *sqlx.Tx, meetingID uuid.UUID, participantIDs []uuid.UUID) error {
	if len(participantIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO meeting_participants (meeting_id, participant_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`, meetingID, database.UUIDArray(participantIDs))
	return err
}

// ===================== Invitations =====================

func (r *MeetingRepository) GetParticipantIDs(ctx context.Context, meetingIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID, len(meetingIDs))
	if len(meetingIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT meeting_id, participant_id, created_at
		FROM meeting_participants
		WHERE meeting_id = ANY($1::uuid[])
		ORDER BY created_at, participant_id`

	var rows []entity.MeetingParticipant
	if err := r.DB.SelectContext(ctx, &rows, query, database.UUIDArray(meetingIDs)); err != nil {
		logger.Error("MeetingRepository:GetParticipantIDs", err)
		return nil, err
	}
	for _, row := range rows {
		out[row.MeetingID] = append(out[row.MeetingID], row.ParticipantID)
	}
	return out, nil
}

// ===================== Schedule =====================

const scheduledSlotColumns = `id, meeting_id, run_id, date, start_time, end_time, created_at`

func (r *MeetingRepository) GetScheduledSlots(ctx context.Context, meetingIDs []uuid.UUID) (map[uuid.UUID]entity.ScheduledSlot, error) {
	out := make(map[uuid.UUID]entity.ScheduledSlot, len(meetingIDs))
	if len(meetingIDs) == 0 {
		return out, nil
	}

	query := `SELECT ` + scheduledSlotColumns + ` FROM scheduled_slots WHERE meeting_id = ANY($1::uuid[])`

	var slots []entity.ScheduledSlot
	if err := r.DB.SelectContext(ctx, &slots, query, database.UUIDArray(meetingIDs)); err != nil {
		logger.Error("MeetingRepository:GetScheduledSlots", err)
		return nil, err
	}
	for _, s := range slots {
		out[s.MeetingID] = s
	}
	return out, nil
}

func (r *MeetingRepository) GetAttendees(ctx context.Context, meetingIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID, len(meetingIDs))
	if len(meetingIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT meeting_id, participant_id
		FROM meeting_attendees
		WHERE meeting_id = ANY($1::uuid[])
		ORDER BY participant_id`

	var rows []entity.Attendee
	if err := r.DB.SelectContext(ctx, &rows, query, database.UUIDArray(meetingIDs)); err != nil {
		logger.Error("MeetingRepository:GetAttendees", err)
		return nil, err
	}
	for _, row := range rows {
		out[row.MeetingID] = append(out[row.MeetingID], row.ParticipantID)
	}
	return out, nil
}

func (r *MeetingRepository) ListScheduledSlots(ctx context.Context) ([]entity.ScheduledSlot, error) {
	query := `SELECT ` + scheduledSlotColumns + ` FROM scheduled_slots ORDER BY date, start_time`

	slots := []entity.ScheduledSlot{}
	if err := r.DB.SelectContext(ctx, &slots, query); err != nil {
		logger.Error("MeetingRepository:ListScheduledSlots", err)
		return nil, err
	}
	return slots, nil
}

func (r *MeetingRepository) ListAttendees(ctx context.Context) ([]entity.Attendee, error) {
	rows := []entity.Attendee{}
	if err := r.DB.SelectContext(ctx, &rows, `SELECT meeting_id, participant_id FROM meeting_attendees`); err != nil {
		logger.Error("MeetingRepository:ListAttendees", err)
		return nil, err
	}
	return rows, nil
}

// MarkScheduled stores the committed slot and its attendees and flips the
// meeting to scheduled in one transaction.
func (r *MeetingRepository) MarkScheduled(ctx context.Context, slot *entity.ScheduledSlot, attendees []uuid.UUID) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO scheduled_slots (meeting_id, run_id, date, start_time, end_time)
			VALUES (:meeting_id, :run_id, :date, :start_time, :end_time)
			ON CONFLICT (meeting_id) DO UPDATE
			SET run_id = EXCLUDED.run_id, date = EXCLUDED.date,
			    start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time`, slot); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM meeting_attendees WHERE meeting_id = $1`, slot.MeetingID); err != nil {
			return err
		}
		if len(attendees) > 0 {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO meeting_attendees (meeting_id, participant_id)
				SELECT $1, unnest($2::uuid[])
				ON CONFLICT DO NOTHING`, slot.MeetingID, database.UUIDArray(attendees)); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE meetings SET status = $2, last_error = NULL, updated_at = NOW()
			WHERE id = $1`, slot.MeetingID, entity.MeetingStatusScheduled)
		return err
	})
	if err != nil {
		logger.Error("MeetingRepository:MarkScheduled", err, "meeting_id", slot.MeetingID)
		return err
	}
	return nil
}

func (r *MeetingRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	err := r.DB.ExecContext(ctx, `
		UPDATE meetings SET status = $2, last_error = $3, updated_at = NOW()
		WHERE id = $1`, id, entity.MeetingStatusFailed, reason)
	if err != nil {
		logger.Error("MeetingRepository:MarkFailed", err, "meeting_id", id)
		return err
	}
	return nil
}
