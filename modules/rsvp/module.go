package rsvp

import (
	"eventhub/core/database"
	"eventhub/core/middleware"
	"eventhub/modules/rsvp/controller"
	"eventhub/modules/rsvp/repository"
	"eventhub/modules/rsvp/router"
	"eventhub/modules/rsvp/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the RSVP module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewRsvpRepository(db)
	svc := service.NewRsvpService(repo)
	ctrl := controller.NewRsvpController(svc)
	rtr := router.NewRsvpRouter(ctrl)

	rtr.Setup(e, mw)
}
