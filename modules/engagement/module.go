package engagement

import (
	"eventhub/core/database"
	"eventhub/core/middleware"
	"eventhub/modules/engagement/controller"
	"eventhub/modules/engagement/repository"
	"eventhub/modules/engagement/router"
	"eventhub/modules/engagement/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the engagement module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewEngagementRepository(db)
	svc := service.NewEngagementService(repo)
	ctrl := controller.NewEngagementController(svc)
	rtr := router.NewEngagementRouter(ctrl)

	rtr.Setup(e, mw)
}
