package controller

import (
	"meeting-scheduler/core/controller"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/modules/scheduling/dto"
	"meeting-scheduler/modules/scheduling/service"

	"github.com/labstack/echo/v4"
)

type SchedulingController struct {
	controller.BaseController
	SchedulingService service.SchedulingServiceInterface
}

func NewSchedulingController(svc service.SchedulingServiceInterface) *SchedulingController {
	return &SchedulingController{
		BaseController:    controller.NewBaseController(),
		SchedulingService: svc,
	}
}

// RunScheduling handles POST /scheduling/run
func (c *SchedulingController) RunScheduling(ctx echo.Context) error {
	result, appErr := c.SchedulingService.StartRun(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.AcceptedResponse(ctx, result, "scheduling started")
}

// GetStatus handles GET /scheduling/status
func (c *SchedulingController) GetStatus(ctx echo.Context) error {
	result, appErr := c.SchedulingService.GetStatus(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "success")
}

// GetRun handles GET /scheduling/runs/:id, where id may be "latest".
func (c *SchedulingController) GetRun(ctx echo.Context) error {
	runID := ctx.Param("id")
	if runID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "run id is required")
	}

	var (
		result *dto.RunStatus
		appErr *errors.AppError
	)
	if runID == "latest" {
		result, appErr = c.SchedulingService.GetLatestRun(ctx.Request().Context())
	} else {
		result, appErr = c.SchedulingService.GetRun(ctx.Request().Context(), runID)
	}
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "success")
}

// Preview handles POST /scheduling/preview
func (c *SchedulingController) Preview(ctx echo.Context) error {
	var req dto.PreviewRequest
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&req); err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "invalid request body")
		}
	}

	result, appErr := c.SchedulingService.Preview(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "success")
}
