package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
	"gorm.io/gorm"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
	}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/stats", h.GetUserStats)
	g.PUT("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeleteUser)
}

// GetUser returns a user profile with follower counts
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user")
	}

	isFollowing := false
	if viewerID := getUserIDFromContext(c); viewerID != 0 && viewerID != user.ID {
		isFollowing, _ = h.followRepository.IsFollowing(viewerID, user.ID)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "is_following": isFollowing})
}

// GetUserStats returns live follower/following counts straight from the
// follows table. The counters on the user row are denormalized and can lag.
func (h *UserHandler) GetUserStats(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	followers, err := h.followRepository.GetFollowersCount(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count followers")
	}
	following, err := h.followRepository.GetFollowingCount(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count following")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"followers_count": followers,
		"following_count": following,
	})
}

// UpdateUser updates profile fields; permitted for the owner or an admin
func (h *UserHandler) UpdateUser(c echo.Context) error {
	claims := getClaims(c)
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if !claims.CanModify(userID) {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to modify this user")
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.AvatarPath != "" {
		user.AvatarPath = req.AvatarPath
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update user")
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account; owned rows cascade at the store level
func (h *UserHandler) DeleteUser(c echo.Context) error {
	claims := getClaims(c)
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if !claims.CanModify(userID) {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this user")
	}

	if err := h.userRepository.DeleteUser(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete user")
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchResult is a search hit annotated with the viewer's follow state.
type SearchResult struct {
	models.UserCompact
	IsFollowing bool `json:"is_following"`
}

// SearchUsers searches users by name or email fragment
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	users, err := h.userRepository.SearchUsers(query, 20)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Search failed")
	}

	followingSet := make(map[uint]bool)
	if viewerID := getUserIDFromContext(c); viewerID != 0 {
		if ids, err := h.followRepository.GetFollowingIDs(viewerID); err == nil {
			for _, id := range ids {
				followingSet[id] = true
			}
		}
	}

	results := make([]SearchResult, len(users))
	for i, u := range users {
		results[i] = SearchResult{UserCompact: u.ToCompact(), IsFollowing: followingSet[u.ID]}
	}
	return c.JSON(http.StatusOK, echo.Map{"users": results})
}
