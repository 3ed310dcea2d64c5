package event

import (
	"eventhub/core/database"
	"eventhub/core/middleware"
	"eventhub/modules/event/controller"
	"eventhub/modules/event/repository"
	"eventhub/modules/event/router"
	"eventhub/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes. users resolves
// admin status for delete authorization.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, users service.UserDirectory) {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, users)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
}
