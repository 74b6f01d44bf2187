package participant

import (
	"meeting-scheduler/core/database"
	"meeting-scheduler/modules/participant/controller"
	"meeting-scheduler/modules/participant/repository"
	"meeting-scheduler/modules/participant/router"
	"meeting-scheduler/modules/participant/service"

	"github.com/labstack/echo/v4"
)

// Init wires the participant module and registers its routes.
func Init(e *echo.Echo, db database.IDatabase) {
	repo := repository.NewParticipantRepository(db)
	svc := service.NewParticipantService(repo)
	ctrl := controller.NewParticipantController(svc)
	router.NewParticipantRouter(ctrl).Setup(e)
}
