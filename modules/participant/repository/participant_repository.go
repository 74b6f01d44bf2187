package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"meeting-scheduler/core/database"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/params"
	"meeting-scheduler/modules/participant/entity"

	"github.com/google/uuid"
)

var ErrDuplicateEmail = errors.New("email already registered")

type ParticipantRepositoryInterface interface {
	Create(ctx context.Context, p *entity.Participant) (*entity.Participant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error)
	List(ctx context.Context, params params.QueryParams) (*entity.PaginatedParticipants, error)
	ListActive(ctx context.Context) ([]entity.Participant, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Participant, error)
	Update(ctx context.Context, id uuid.UUID, p *entity.Participant) (*entity.Participant, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	AddTimeSlot(ctx context.Context, slot *entity.TimeSlot) (*entity.TimeSlot, error)
	GetTimeSlots(ctx context.Context, participantID uuid.UUID) ([]entity.TimeSlot, error)
	GetTimeSlotsByParticipants(ctx context.Context, participantIDs []uuid.UUID) (map[uuid.UUID][]entity.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, participantID, slotID uuid.UUID) (bool, error)
}

type ParticipantRepository struct {
	DB database.IDatabase
}

func NewParticipantRepository(db database.IDatabase) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

var _ ParticipantRepositoryInterface = (*ParticipantRepository)(nil)

const participantColumns = `id, name, email, is_active, created_at, updated_at`

// ===================== Participants =====================

func (r *ParticipantRepository) Create(ctx context.Context, p *entity.Participant) (*entity.Participant, error) {
	query := `
		INSERT INTO participants (name, email, is_active)
		VALUES ($1, $2, $3)
		RETURNING ` + participantColumns

	var created entity.Participant
	err := r.DB.GetContext(ctx, &created, query, p.Name, p.Email, p.IsActive)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		logger.Error("ParticipantRepository:Create", err)
		return nil, err
	}
	return &created, nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`

	var p entity.Participant
	err := r.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetByID", err)
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepository) List(ctx context.Context, params params.QueryParams) (*entity.PaginatedParticipants, error) {
	var (
		where string
		args  []any
	)
	if params.Search != "" {
		where = ` WHERE name ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM participants`+where, args...); err != nil {
		logger.Error("ParticipantRepository:List:Count", err)
		return nil, err
	}

	query := `SELECT ` + participantColumns + ` FROM participants` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	var items []entity.Participant
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		logger.Error("ParticipantRepository:List:Select", err)
		return nil, err
	}

	return &entity.PaginatedParticipants{
		Items:      items,
		TotalItems: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

// ListActive returns every participant that takes part in scheduling runs.
func (r *ParticipantRepository) ListActive(ctx context.Context) ([]entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE is_active ORDER BY created_at`

	var items []entity.Participant
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		logger.Error("ParticipantRepository:ListActive", err)
		return nil, err
	}
	return items, nil
}

func (r *ParticipantRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Participant, error) {
	items := []entity.Participant{}
	if len(ids) == 0 {
		return items, nil
	}

	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = ANY($1::uuid[]) ORDER BY created_at`
	if err := r.DB.SelectContext(ctx, &items, query, database.UUIDArray(ids)); err != nil {
		logger.Error("ParticipantRepository:GetByIDs", err)
		return nil, err
	}
	return items, nil
}

func (r *ParticipantRepository) Update(ctx context.Context, id uuid.UUID, p *entity.Participant) (*entity.Participant, error) {
	query := `
		UPDATE participants
		SET name = $2, email = $3, is_active = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + participantColumns

	var updated entity.Participant
	err := r.DB.GetContext(ctx, &updated, query, id, p.Name, p.Email, p.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		case database.IsUniqueViolation(err):
			return nil, ErrDuplicateEmail
		}
		logger.Error("ParticipantRepository:Update", err)
		return nil, err
	}
	return &updated, nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.DB.SQLx().ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		logger.Error("ParticipantRepository:Delete", err)
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		logger.Error("ParticipantRepository:Delete:RowsAffected", err)
		return false, err
	}
	return rows > 0, nil
}

// ===================== Time slots =====================

const timeSlotColumns = `id, participant_id, date, start_time, end_time, created_at`

func (r *ParticipantRepository) AddTimeSlot(ctx context.Context, slot *entity.TimeSlot) (*entity.TimeSlot, error) {
	query := `
		INSERT INTO time_slots (participant_id, date, start_time, end_time)
		VALUES (:participant_id, :date, :start_time, :end_time)
		RETURNING ` + timeSlotColumns

	rows, err := r.DB.NamedQueryContext(ctx, query, slot)
	if err != nil {
		logger.Error("ParticipantRepository:AddTimeSlot", err)
		return nil, err
	}
	defer rows.Close()

	var created entity.TimeSlot
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			logger.Error("ParticipantRepository:AddTimeSlot:Next", err)
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	if err := rows.StructScan(&created); err != nil {
		logger.Error("ParticipantRepository:AddTimeSlot:Scan", err)
		return nil, err
	}
	return &created, nil
}

func (r *ParticipantRepository) GetTimeSlots(ctx context.Context, participantID uuid.UUID) ([]entity.TimeSlot, error) {
	query := `
		SELECT ` + timeSlotColumns + `
		FROM time_slots
		WHERE participant_id = $1
		ORDER BY date, start_time`

	slots := []entity.TimeSlot{}
	if err := r.DB.SelectContext(ctx, &slots, query, participantID); err != nil {
		logger.Error("ParticipantRepository:GetTimeSlots", err)
		return nil, err
	}
	return slots, nil
}

func (r *ParticipantRepository) GetTimeSlotsByParticipants(ctx context.Context, participantIDs []uuid.UUID) (map[uuid.UUID][]entity.TimeSlot, error) {
	out := make(map[uuid.UUID][]entity.TimeSlot, len(participantIDs))
	if len(participantIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT ` + timeSlotColumns + `
		FROM time_slots
		WHERE participant_id = ANY($1::uuid[])
		ORDER BY date, start_time`

	var slots []entity.TimeSlot
	if err := r.DB.SelectContext(ctx, &slots, query, database.UUIDArray(participantIDs)); err != nil {
		logger.Error("ParticipantRepository:GetTimeSlotsByParticipants", err)
		return nil, err
	}
	for _, s := range slots {
		out[s.ParticipantID] = append(out[s.ParticipantID], s)
	}
	return out, nil
}

func (r *ParticipantRepository) DeleteTimeSlot(ctx context.Context, participantID, slotID uuid.UUID) (bool, error) {
	result, err := r.DB.SQLx().ExecContext(ctx,
		`DELETE FROM time_slots WHERE id = $1 AND participant_id = $2`, slotID, participantID)
	if err != nil {
		logger.Error("ParticipantRepository:DeleteTimeSlot", err)
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		logger.Error("ParticipantRepository:DeleteTimeSlot:RowsAffected", err)
		return false, err
	}
	return rows > 0, nil
}
