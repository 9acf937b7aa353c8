package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/pkg/token"
)

// AdminOnly rejects requests whose bearer is not an admin. Must run after
// JWTAuthMiddleware.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if claims.Role != token.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}
