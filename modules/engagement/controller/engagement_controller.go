package controller

import (
	"eventhub/core/constants"
	"eventhub/core/controller"
	"eventhub/core/errors"
	"eventhub/core/utils"
	"eventhub/modules/engagement/dto"
	"eventhub/modules/engagement/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EngagementController handles comment and rating HTTP requests
type EngagementController struct {
	controller.BaseController
	EngagementService service.EngagementServiceInterface
}

func NewEngagementController(svc service.EngagementServiceInterface) *EngagementController {
	return &EngagementController{
		BaseController:    controller.NewBaseController(),
		EngagementService: svc,
	}
}

func (c *EngagementController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// AddComment handles POST /private/events/:id/comments
// @Summary Comment on an event
// @Tags Engagement
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.AddCommentRequest true "Comment body"
// @Success 200 {object} dto.CommentResponse
// @Failure 404 {object} errors.AppError
// @Router /private/events/{id}/comments [post]
func (c *EngagementController) AddComment(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	requestData := new(dto.AddCommentRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	result, appErr := c.EngagementService.AddComment(ctx.Request().Context(), userID, eventID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Comment added")
}

// ListComments handles GET /public/events/:id/comments
// @Summary List event comments in chronological order
// @Tags Engagement
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 404 {object} errors.AppError
// @Router /public/events/{id}/comments [get]
func (c *EngagementController) ListComments(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	result, appErr := c.EngagementService.ListComments(ctx.Request().Context(), eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// RateEvent handles PUT /private/events/:id/rating
// @Summary Rate an event from 1 to 5, overwriting any previous score
// @Tags Engagement
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.RateEventRequest true "Score"
// @Success 200 {object} dto.RatingResponse
// @Failure 400 {object} errors.AppError
// @Router /private/events/{id}/rating [put]
func (c *EngagementController) RateEvent(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	requestData := new(dto.RateEventRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	result, appErr := c.EngagementService.RateEvent(ctx.Request().Context(), userID, eventID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Rating saved")
}

// GetRatingSummary handles GET /public/events/:id/rating
// @Summary Average score and rating count for an event
// @Tags Engagement
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.RatingSummaryResponse
// @Failure 404 {object} errors.AppError
// @Router /public/events/{id}/rating [get]
func (c *EngagementController) GetRatingSummary(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	result, appErr := c.EngagementService.GetRatingSummary(ctx.Request().Context(), eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
