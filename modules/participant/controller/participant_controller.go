package controller

import (
	"meeting-scheduler/core/controller"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/core/params"
	"meeting-scheduler/modules/participant/dto"
	"meeting-scheduler/modules/participant/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ParticipantController struct {
	controller.BaseController
	ParticipantService service.ParticipantServiceInterface
}

func NewParticipantController(svc service.ParticipantServiceInterface) *ParticipantController {
	return &ParticipantController{
		BaseController:     controller.NewBaseController(),
		ParticipantService: svc,
	}
}

// CreateParticipant handles POST /participants
func (c *ParticipantController) CreateParticipant(ctx echo.Context) error {
	var req dto.ParticipantRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid request body")
	}
	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid participant", errs)
	}

	result, appErr := c.ParticipantService.CreateParticipant(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "participant created")
}

// GetParticipants handles GET /participants?page=&limit=&search=
func (c *ParticipantController) GetParticipants(ctx echo.Context) error {
	queryParams := params.NewQueryParams(ctx)

	result, appErr := c.ParticipantService.GetParticipants(ctx.Request().Context(), *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "success")
}

func (c *ParticipantController) GetParticipant(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid participant id")
	}

	result, appErr := c.ParticipantService.GetParticipant(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "success")
}

func (c *ParticipantController) UpdateParticipant(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid participant id")
	}

	var req dto.ParticipantRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid request body")
	}
	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid participant", errs)
	}

	result, appErr := c.ParticipantService.UpdateParticipant(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "participant updated")
}

func (c *ParticipantController) DeleteParticipant(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid participant id")
	}

	if appErr := c.ParticipantService.DeleteParticipant(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "participant deleted")
}

// AddTimeSlot handles POST /participants/:id/timeslots
func (c *ParticipantController) AddTimeSlot(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid participant id")
	}

	var req dto.TimeSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid request body")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid time slot", errs)
	}

	result, appErr := c.ParticipantService.AddTimeSlot(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "time slot created")
}

func (c *ParticipantController) GetTimeSlots(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid participant id")
	}

	result, appErr := c.ParticipantService.GetTimeSlots(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "success")
}

func (c *ParticipantController) DeleteTimeSlot(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid participant id")
	}
	slotID, err := uuid.Parse(ctx.Param("slotId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid time slot id")
	}

	if appErr := c.ParticipantService.DeleteTimeSlot(ctx.Request().Context(), id, slotID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "time slot deleted")
}
