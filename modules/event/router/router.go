package router

import (
	"eventhub/core/middleware"
	"eventhub/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter handles event routes
type EventRouter struct {
	EventController *controller.EventController
}

func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{
		EventController: eventController,
	}
}

// Setup registers event routes. The search route is registered before the
// :id route so "search" is not parsed as an event ID.
func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public")
	public.GET("/events", r.EventController.ListPublic)
	public.GET("/events/search", r.EventController.Search)
	public.GET("/events/:id", r.EventController.GetByID)

	private := v1.Group("/private", mw.AuthMiddleware())
	private.GET("/events", r.EventController.ListMine)
	private.POST("/events", r.EventController.Create)
	private.PUT("/events/:id", r.EventController.Update)
	private.DELETE("/events/:id", r.EventController.Delete)
}
