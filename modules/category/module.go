package category

import (
	"eventhub/core/database"
	"eventhub/core/middleware"
	"eventhub/modules/category/controller"
	"eventhub/modules/category/repository"
	"eventhub/modules/category/router"
	"eventhub/modules/category/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the category module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewCategoryRepository(db)
	svc := service.NewCategoryService(repo)
	ctrl := controller.NewCategoryController(svc)
	rtr := router.NewCategoryRouter(ctrl)

	rtr.Setup(e, mw)
}
