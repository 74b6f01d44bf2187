package controller

import (
	"strconv"

	"meeting-scheduler/core/controller"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/core/params"
	"meeting-scheduler/modules/notification/dto"
	"meeting-scheduler/modules/notification/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	controller.BaseController
	NotificationService service.NotificationServiceInterface
}

func NewNotificationController(svc service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		BaseController:      controller.NewBaseController(),
		NotificationService: svc,
	}
}

func (c *NotificationController) participantID(ctx echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, c.BadRequest(errors.ErrInvalidInput, "invalid participant id")
	}
	return id, nil
}

// GetNotifications handles GET /participants/:id/notifications?unread=true
func (c *NotificationController) GetNotifications(ctx echo.Context) error {
	id, err := c.participantID(ctx)
	if err != nil {
		return err
	}
	unreadOnly, _ := strconv.ParseBool(ctx.QueryParam("unread"))

	result, appErr := c.NotificationService.GetNotifications(ctx.Request().Context(), id, unreadOnly, *params.NewQueryParams(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "success")
}

// CountUnread handles GET /participants/:id/notifications/unread-count
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	id, err := c.participantID(ctx)
	if err != nil {
		return err
	}

	result, appErr := c.NotificationService.CountUnread(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "success")
}

// MarkAsRead handles PUT /participants/:id/notifications/mark-read
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	id, err := c.participantID(ctx)
	if err != nil {
		return err
	}

	var req dto.MarkAsReadRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid request body")
	}
	if len(req.IDs) == 0 {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request",
			[]controller.ValidationError{controller.NewValidationError("ids", "at least one notification id is required")})
	}

	result, appErr := c.NotificationService.MarkAsRead(ctx.Request().Context(), id, req.IDs)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "notifications marked as read")
}

// MarkAllAsRead handles PUT /participants/:id/notifications/mark-all-read
func (c *NotificationController) MarkAllAsRead(ctx echo.Context) error {
	id, err := c.participantID(ctx)
	if err != nil {
		return err
	}

	result, appErr := c.NotificationService.MarkAllAsRead(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "notifications marked as read")
}
