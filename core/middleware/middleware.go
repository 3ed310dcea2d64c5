package middleware

import (
	"context"

	"eventhub/core/constants"
	"eventhub/core/controller"
	"eventhub/core/errors"
	"eventhub/core/logger"
	"eventhub/core/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthIntrospector is the slice of the auth service the middleware needs.
// Banned and admin flags are checked against live state, not token claims,
// so a ban takes effect before the token expires.
type AuthIntrospector interface {
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
	IsUserBanned(ctx context.Context, userID uuid.UUID) (bool, error)
	IsUserAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type Middleware struct {
	auth AuthIntrospector
}

func NewMiddleware(auth AuthIntrospector) *Middleware {
	return &Middleware{auth: auth}
}

// AuthMiddleware gates "must be logged in" routes: it validates the bearer
// token, rejects revoked tokens and banned users, and stores the claims in
// the request context under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "missing or malformed authorization header")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "invalid or expired token")
			}
			if claims.Scope != constants.ScopeTokenAccess {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "token scope not valid for this endpoint")
			}

			ctx := c.Request().Context()

			revoked, err := m.auth.IsTokenRevoked(ctx, token)
			if err != nil {
				logger.Error("Middleware:AuthMiddleware:IsTokenRevoked", err)
				return controller.NewErrorResponse(500, errors.ErrInternalServer, "failed to verify token")
			}
			if revoked {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "token has been revoked")
			}

			banned, err := m.auth.IsUserBanned(ctx, claims.UserID)
			if err != nil {
				logger.Error("Middleware:AuthMiddleware:IsUserBanned", err)
				return controller.NewErrorResponse(500, errors.ErrInternalServer, "failed to verify account")
			}
			if banned {
				return controller.NewErrorResponse(403, errors.ErrForbidden, "account is suspended")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// AdminMiddleware requires AuthMiddleware to have run first.
func (m *Middleware) AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
			if !ok {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "user not authenticated")
			}

			isAdmin, err := m.auth.IsUserAdmin(c.Request().Context(), claims.UserID)
			if err != nil {
				logger.Error("Middleware:AdminMiddleware:IsUserAdmin", err)
				return controller.NewErrorResponse(500, errors.ErrInternalServer, "failed to verify account")
			}
			if !isAdmin {
				return controller.NewErrorResponse(403, errors.ErrForbidden, "not permitted")
			}

			return next(c)
		}
	}
}
