package router

import (
	"meeting-scheduler/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

type NotificationRouter struct {
	NotificationController *controller.NotificationController
}

func NewNotificationRouter(notificationController *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{NotificationController: notificationController}
}

func (r *NotificationRouter) Setup(e *echo.Echo) {
	group := e.Group("/api/v1/participants/:id/notifications")

	group.GET("", r.NotificationController.GetNotifications)
	group.GET("/unread-count", r.NotificationController.CountUnread)
	group.PUT("/mark-read", r.NotificationController.MarkAsRead)
	group.PUT("/mark-all-read", r.NotificationController.MarkAllAsRead)
}
