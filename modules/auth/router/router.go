package router

import (
	"eventhub/core/middleware"
	"eventhub/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter handles account routes
type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

// Setup registers account routes
func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public")
	public.POST("/auth/register", r.AuthController.Register)
	public.POST("/auth/login", r.AuthController.Login)
	public.POST("/auth/refresh", r.AuthController.RefreshToken)
	public.GET("/users/:username", r.AuthController.GetPublicProfile)

	private := v1.Group("/private")

	authRoutes := private.Group("/auth", mw.AuthMiddleware())
	authRoutes.POST("/logout", r.AuthController.Logout)

	userRoutes := private.Group("/users", mw.AuthMiddleware())
	userRoutes.GET("/me", r.AuthController.GetProfile)
	userRoutes.PUT("/me", r.AuthController.UpdateProfile)
	userRoutes.POST("/me/avatar", r.AuthController.UploadAvatar)

	adminRoutes := private.Group("/admin", mw.AuthMiddleware(), mw.AdminMiddleware())
	adminRoutes.PUT("/users/:id/ban", r.AuthController.BanUser)
	adminRoutes.PUT("/users/:id/unban", r.AuthController.UnbanUser)
}
