package notification

import (
	"meeting-scheduler/core/database"
	"meeting-scheduler/modules/notification/controller"
	"meeting-scheduler/modules/notification/repository"
	"meeting-scheduler/modules/notification/router"
	"meeting-scheduler/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// NewService builds the notification service. The scheduling worker uses it
// to deliver commit notices.
func NewService(db database.IDatabase) *service.NotificationService {
	return service.NewNotificationService(repository.NewNotificationRepository(db))
}

// Init registers the participant inbox routes.
func Init(e *echo.Echo, svc service.NotificationServiceInterface) {
	ctrl := controller.NewNotificationController(svc)
	router.NewNotificationRouter(ctrl).Setup(e)
}
