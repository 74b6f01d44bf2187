package router

import (
	"meeting-scheduler/modules/participant/controller"

	"github.com/labstack/echo/v4"
)

type ParticipantRouter struct {
	ParticipantController *controller.ParticipantController
}

func NewParticipantRouter(participantController *controller.ParticipantController) *ParticipantRouter {
	return &ParticipantRouter{ParticipantController: participantController}
}

func (r *ParticipantRouter) Setup(e *echo.Echo) {
	participants := e.Group("/api/v1/participants")

	participants.POST("", r.ParticipantController.CreateParticipant)
	participants.GET("", r.ParticipantController.GetParticipants)
	participants.GET("/:id", r.ParticipantController.GetParticipant)
	participants.PUT("/:id", r.ParticipantController.UpdateParticipant)
	participants.DELETE("/:id", r.ParticipantController.DeleteParticipant)

	participants.POST("/:id/timeslots", r.ParticipantController.AddTimeSlot)
	participants.GET("/:id/timeslots", r.ParticipantController.GetTimeSlots)
	participants.DELETE("/:id/timeslots/:slotId", r.ParticipantController.DeleteTimeSlot)
}
