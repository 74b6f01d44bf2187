package controller

import (
	"meeting-scheduler/core/controller"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/core/params"
	"meeting-scheduler/modules/meeting/dto"
	"meeting-scheduler/modules/meeting/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MeetingController handles meeting HTTP requests
type MeetingController struct {
	controller.BaseController
	MeetingService service.MeetingServiceInterface
}

func NewMeetingController(svc service.MeetingServiceInterface) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		MeetingService: svc,
	}
}

func (c *MeetingController) bindRequest(ctx echo.Context) (*dto.MeetingRequest, error) {
	var req dto.MeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return nil, c.BadRequest(errors.ErrInvalidInput, "invalid request body")
	}
	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		return nil, c.BadRequest(errors.ErrInvalidRequestData, "invalid meeting", errs)
	}
	return &req, nil
}

// CreateMeeting handles POST /meetings
func (c *MeetingController) CreateMeeting(ctx echo.Context) error {
	req, err := c.bindRequest(ctx)
	if err != nil {
		return err
	}

	result, appErr := c.MeetingService.CreateMeeting(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "meeting created")
}

// GetMeetings handles GET /meetings?page=&limit=&search=
func (c *MeetingController) GetMeetings(ctx echo.Context) error {
	queryParams := params.NewQueryParams(ctx)

	result, appErr := c.MeetingService.GetMeetings(ctx.Request().Context(), *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "success")
}

// GetMeeting handles GET /meetings/:id
func (c *MeetingController) GetMeeting(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid meeting id")
	}

	result, appErr := c.MeetingService.GetMeeting(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "success")
}

// UpdateMeeting handles PUT /meetings/:id
func (c *MeetingController) UpdateMeeting(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid meeting id")
	}
	req, err := c.bindRequest(ctx)
	if err != nil {
		return err
	}

	result, appErr := c.MeetingService.UpdateMeeting(ctx.Request().Context(), id, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "meeting updated")
}

// DeleteMeeting handles DELETE /meetings/:id
func (c *MeetingController) DeleteMeeting(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid meeting id")
	}

	if appErr := c.MeetingService.DeleteMeeting(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "meeting deleted")
}
