package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/pkg/token"
)

// ContextKeyUser is the echo context key the verified claims are stored under.
const ContextKeyUser = "user"

// JWTAuthMiddleware checks for a valid bearer token and stores its claims
// in the request context.
func JWTAuthMiddleware(tokens *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			claims, err := tokens.VerifyAccessToken(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ContextKeyUser, claims)
			return next(c)
		}
	}
}

// GetClaims returns the verified claims stored by JWTAuthMiddleware, or nil
// when the request is unauthenticated.
func GetClaims(c echo.Context) *token.AccessClaims {
	claims, _ := c.Get(ContextKeyUser).(*token.AccessClaims)
	return claims
}
