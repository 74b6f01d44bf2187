package router

import (
	"meeting-scheduler/core/middleware"
	"meeting-scheduler/modules/scheduling/controller"

	"github.com/labstack/echo/v4"
)

type SchedulingRouter struct {
	SchedulingController *controller.SchedulingController
}

func NewSchedulingRouter(schedulingController *controller.SchedulingController) *SchedulingRouter {
	return &SchedulingRouter{SchedulingController: schedulingController}
}

func (r *SchedulingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	scheduling := e.Group("/api/v1/scheduling")

	scheduling.POST("/run", r.SchedulingController.RunScheduling, mw.AuthMiddleware())
	scheduling.POST("/preview", r.SchedulingController.Preview)
	scheduling.GET("/status", r.SchedulingController.GetStatus)
	scheduling.GET("/runs/:id", r.SchedulingController.GetRun)
}
