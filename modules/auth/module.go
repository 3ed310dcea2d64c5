package auth

import (
	"eventhub/core/cache"
	"eventhub/core/database"
	"eventhub/core/middleware"
	"eventhub/core/storage"
	"eventhub/modules/auth/controller"
	"eventhub/modules/auth/repository"
	"eventhub/modules/auth/router"
	"eventhub/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes. It returns the
// service (for the startup admin bootstrap) and the middleware the other
// modules share.
func Init(e *echo.Echo, db database.Database, c cache.Cache, uploader storage.Uploader) (*service.AuthService, *middleware.Middleware) {
	repo := repository.NewAuthRepository(db)
	svc := service.NewAuthService(repo, c, uploader)
	mw := middleware.NewMiddleware(svc)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
	return svc, mw
}
