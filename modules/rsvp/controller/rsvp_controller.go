package controller

import (
	"eventhub/core/constants"
	"eventhub/core/controller"
	"eventhub/core/errors"
	"eventhub/core/utils"
	"eventhub/modules/rsvp/dto"
	"eventhub/modules/rsvp/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RsvpController handles RSVP HTTP requests
type RsvpController struct {
	controller.BaseController
	RsvpService service.RsvpServiceInterface
}

func NewRsvpController(svc service.RsvpServiceInterface) *RsvpController {
	return &RsvpController{
		BaseController: controller.NewBaseController(),
		RsvpService:    svc,
	}
}

func (c *RsvpController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// Toggle handles POST /private/events/:id/rsvp
// @Summary Toggle own RSVP for an event
// @Description Creates a "going" RSVP when none exists, removes it otherwise
// @Tags RSVP
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.ToggleRequest false "Guests and note, applied on creation"
// @Success 200 {object} dto.ToggleResponse
// @Failure 404 {object} errors.AppError
// @Router /private/events/{id}/rsvp [post]
func (c *RsvpController) Toggle(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	requestData := new(dto.ToggleRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	result, appErr := c.RsvpService.Toggle(ctx.Request().Context(), userID, eventID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "RSVP updated")
}

// GetAttendance handles GET /public/events/:id/attendance
// @Summary Seat accounting for an event
// @Tags RSVP
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 404 {object} errors.AppError
// @Router /public/events/{id}/attendance [get]
func (c *RsvpController) GetAttendance(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	result, appErr := c.RsvpService.GetAttendance(ctx.Request().Context(), eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMyRsvps handles GET /private/rsvps
// @Summary List own RSVPs
// @Tags RSVP
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.RsvpResponse
// @Router /private/rsvps [get]
func (c *RsvpController) GetMyRsvps(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.RsvpService.GetMyRsvps(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
