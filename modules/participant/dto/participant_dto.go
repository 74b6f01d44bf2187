package dto

import (
	"strings"
	"time"

	"meeting-scheduler/core/controller"
	coredto "meeting-scheduler/core/dto"
	"meeting-scheduler/core/utils"

	"github.com/google/uuid"
)

// ===================== Request DTOs =====================

type ParticipantRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (r *ParticipantRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *ParticipantRequest) Validate() []controller.ValidationError {
	var errs []controller.ValidationError
	if r.Name == "" {
		errs = append(errs, controller.NewValidationError("name", "name is required"))
	}
	if r.Email == "" {
		errs = append(errs, controller.NewValidationError("email", "email is required"))
	} else if !utils.IsValidEmail(r.Email) {
		errs = append(errs, controller.NewValidationError("email", "email is not a valid address"))
	}
	return errs
}

type TimeSlotRequest struct {
	Date      string  `json:"date"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

func (r *TimeSlotRequest) Validate() []controller.ValidationError {
	var errs []controller.ValidationError
	if !utils.IsValidDate(r.Date) {
		errs = append(errs, controller.NewValidationError("date", "date must be YYYY-MM-DD"))
	}
	if !utils.IsValidHourRange(r.StartTime, r.EndTime) {
		errs = append(errs, controller.NewValidationError("end_time", "end_time must be after start_time within 0-24"))
	}
	return errs
}

// ===================== Response DTOs =====================

type TimeSlotResponse struct {
	ID            uuid.UUID `json:"id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	Date          string    `json:"date"`
	StartTime     float64   `json:"start_time"`
	EndTime       float64   `json:"end_time"`
}

type ParticipantResponse struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	IsActive       bool               `json:"is_active"`
	AvailableSlots []TimeSlotResponse `json:"available_slots"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

type PaginatedParticipantResponse = coredto.Pagination[ParticipantResponse]
