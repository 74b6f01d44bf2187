package router

import (
	"meeting-scheduler/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

// MeetingRouter handles meeting routes
type MeetingRouter struct {
	MeetingController *controller.MeetingController
}

func NewMeetingRouter(meetingController *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{MeetingController: meetingController}
}

// Setup registers meeting routes
func (r *MeetingRouter) Setup(e *echo.Echo) {
	meetings := e.Group("/api/v1/meetings")

	meetings.POST("", r.MeetingController.CreateMeeting)
	meetings.GET("", r.MeetingController.GetMeetings)
	meetings.GET("/:id", r.MeetingController.GetMeeting)
	meetings.PUT("/:id", r.MeetingController.UpdateMeeting)
	meetings.DELETE("/:id", r.MeetingController.DeleteMeeting)
}
