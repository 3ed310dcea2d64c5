package router

import (
	"eventhub/core/middleware"
	"eventhub/modules/category/controller"

	"github.com/labstack/echo/v4"
)

// CategoryRouter handles category routes
type CategoryRouter struct {
	CategoryController *controller.CategoryController
}

func NewCategoryRouter(categoryController *controller.CategoryController) *CategoryRouter {
	return &CategoryRouter{
		CategoryController: categoryController,
	}
}

// Setup registers category routes
func (r *CategoryRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public")
	public.GET("/categories", r.CategoryController.ListCategories)
	public.GET("/categories/:slug", r.CategoryController.GetCategory)

	adminRoutes := v1.Group("/private/admin", mw.AuthMiddleware(), mw.AdminMiddleware())
	adminRoutes.POST("/categories", r.CategoryController.CreateCategory)
}
