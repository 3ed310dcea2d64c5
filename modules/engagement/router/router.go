package router

import (
	"eventhub/core/middleware"
	"eventhub/modules/engagement/controller"

	"github.com/labstack/echo/v4"
)

// EngagementRouter handles comment and rating routes
type EngagementRouter struct {
	EngagementController *controller.EngagementController
}

func NewEngagementRouter(engagementController *controller.EngagementController) *EngagementRouter {
	return &EngagementRouter{
		EngagementController: engagementController,
	}
}

// Setup registers comment and rating routes
func (r *EngagementRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public")
	public.GET("/events/:id/comments", r.EngagementController.ListComments)
	public.GET("/events/:id/rating", r.EngagementController.GetRatingSummary)

	private := v1.Group("/private", mw.AuthMiddleware())
	private.POST("/events/:id/comments", r.EngagementController.AddComment)
	private.PUT("/events/:id/rating", r.EngagementController.RateEvent)
}
