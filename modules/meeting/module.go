package meeting

import (
	"meeting-scheduler/core/database"
	"meeting-scheduler/modules/meeting/controller"
	"meeting-scheduler/modules/meeting/repository"
	"meeting-scheduler/modules/meeting/router"
	"meeting-scheduler/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the meeting module and registers routes
func Init(e *echo.Echo, db database.IDatabase) {
	repo := repository.NewMeetingRepository(db)
	svc := service.NewMeetingService(repo)
	ctrl := controller.NewMeetingController(svc)
	router.NewMeetingRouter(ctrl).Setup(e)
}
