package controller

import (
	"eventhub/core/controller"
	"eventhub/core/errors"
	"eventhub/modules/category/dto"
	"eventhub/modules/category/service"

	"github.com/labstack/echo/v4"
)

// CategoryController handles category HTTP requests
type CategoryController struct {
	controller.BaseController
	CategoryService service.CategoryServiceInterface
}

func NewCategoryController(svc service.CategoryServiceInterface) *CategoryController {
	return &CategoryController{
		BaseController:  controller.NewBaseController(),
		CategoryService: svc,
	}
}

// CreateCategory handles POST /private/admin/categories
// @Summary Create a category
// @Tags Category
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category name"
// @Success 200 {object} dto.CategoryResponse
// @Failure 409 {object} errors.AppError
// @Router /private/admin/categories [post]
func (c *CategoryController) CreateCategory(ctx echo.Context) error {
	requestData := new(dto.CreateCategoryRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	result, appErr := c.CategoryService.CreateCategory(ctx.Request().Context(), requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Category created")
}

// ListCategories handles GET /public/categories
// @Summary List categories
// @Tags Category
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /public/categories [get]
func (c *CategoryController) ListCategories(ctx echo.Context) error {
	result, appErr := c.CategoryService.ListCategories(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetCategory handles GET /public/categories/:slug
// @Summary Get a category by slug
// @Tags Category
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} errors.AppError
// @Router /public/categories/{slug} [get]
func (c *CategoryController) GetCategory(ctx echo.Context) error {
	categorySlug := ctx.Param("slug")
	if categorySlug == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Category slug is required")
	}

	result, appErr := c.CategoryService.GetCategoryBySlug(ctx.Request().Context(), categorySlug)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
