package router

import (
	"eventhub/core/middleware"
	"eventhub/modules/rsvp/controller"

	"github.com/labstack/echo/v4"
)

// RsvpRouter handles RSVP routes
type RsvpRouter struct {
	RsvpController *controller.RsvpController
}

func NewRsvpRouter(rsvpController *controller.RsvpController) *RsvpRouter {
	return &RsvpRouter{
		RsvpController: rsvpController,
	}
}

// Setup registers RSVP routes
func (r *RsvpRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public")
	public.GET("/events/:id/attendance", r.RsvpController.GetAttendance)

	private := v1.Group("/private", mw.AuthMiddleware())
	private.POST("/events/:id/rsvp", r.RsvpController.Toggle)
	private.GET("/rsvps", r.RsvpController.GetMyRsvps)
}
