package handlers

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/repositories"
	"github.com/loopline/backend/pkg/logging"
	"go.uber.org/zap"
)

// AdminHandler handles admin-only user management requests
type AdminHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
	logger         *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository) *AdminHandler {
	return &AdminHandler{
		userRepository: userRepo,
		postRepository: postRepo,
		logger:         logging.WithComponent("admin"),
	}
}

// RegisterAdminRoutes registers admin user management routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.DELETE("/users/:id", h.DeleteUser)
	g.DELETE("/posts/:id", h.DeletePost)
}

// ListUsers returns all users, paginated
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, limit := parsePagination(c)

	users, total, err := h.userRepository.ListUsers(page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users")
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.JSON(http.StatusOK, echo.Map{
		"users": users,
		"meta": echo.Map{
			"currentPage": page,
			"totalPages":  totalPages,
			"totalItems":  total,
		},
	})
}

// DeleteUser removes a user account
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err := h.userRepository.DeleteUser(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete user")
	}

	h.logger.Info("user removed by admin", zap.Uint("user_id", userID))
	return c.NoContent(http.StatusNoContent)
}

// DeletePost removes any post regardless of owner
func (h *AdminHandler) DeletePost(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if err := h.postRepository.DeletePost(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete post")
	}

	h.logger.Info("post removed by admin", zap.Uint("post_id", postID))
	return c.NoContent(http.StatusNoContent)
}
