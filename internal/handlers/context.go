package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/middleware"
	"github.com/loopline/backend/pkg/token"
)

// getClaims returns the authenticated claims, or nil for anonymous requests.
func getClaims(c echo.Context) *token.AccessClaims {
	return middleware.GetClaims(c)
}

// getUserIDFromContext returns the authenticated user id, 0 when anonymous.
func getUserIDFromContext(c echo.Context) uint {
	if claims := getClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parsePagination reads page/limit query params with sane bounds.
func parsePagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return page, limit
}
