package scheduling

import (
	"meeting-scheduler/core/cache"
	"meeting-scheduler/core/config"
	"meeting-scheduler/core/database"
	"meeting-scheduler/core/middleware"
	"meeting-scheduler/core/queue"
	"meeting-scheduler/core/storage"
	meetingrepo "meeting-scheduler/modules/meeting/repository"
	participantrepo "meeting-scheduler/modules/participant/repository"
	"meeting-scheduler/modules/scheduling/controller"
	"meeting-scheduler/modules/scheduling/router"
	"meeting-scheduler/modules/scheduling/service"
	"meeting-scheduler/modules/scheduling/task"

	"github.com/labstack/echo/v4"
)

// NewService builds the scheduling service shared by the HTTP module and
// the queue worker.
func NewService(
	db database.IDatabase,
	c cache.Cache,
	q queue.Enqueuer,
	archive storage.Archive,
	notifier service.Notifier,
	cfg config.SchedulingConfig,
) *service.SchedulingService {
	return service.NewSchedulingService(
		meetingrepo.NewMeetingRepository(db),
		participantrepo.NewParticipantRepository(db),
		c, q, archive, notifier, cfg,
	)
}

// Init registers the scheduling routes.
func Init(e *echo.Echo, svc service.SchedulingServiceInterface, mw *middleware.Middleware) {
	ctrl := controller.NewSchedulingController(svc)
	router.NewSchedulingRouter(ctrl).Setup(e, mw)
}

// RegisterTasks wires the scheduling queue handlers.
func RegisterTasks(w *queue.Worker, svc service.SchedulingServiceInterface) {
	task.Register(w, svc)
}
