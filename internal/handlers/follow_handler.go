package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
	"github.com/loopline/backend/internal/services"
	"gorm.io/gorm"
)

// FollowHandler handles follow/unfollow HTTP requests.
// Follow is deliberately not a toggle: following an already-followed user is
// a conflict, and unfollowing a non-followed user succeeds silently.
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	notifier         *services.Notifier
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifier *services.Notifier) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		notifier:         notifier,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if currentUserID == targetID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	if _, err := h.userRepository.GetUserByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user")
	}

	follow := &models.Follow{
		FollowerID:  currentUserID,
		FollowingID: targetID,
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Already following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow user")
	}

	// Update counts
	h.userRepository.IncrementFollowingCount(currentUserID)
	h.userRepository.IncrementFollowersCount(targetID)

	h.notifier.Notify(targetID, currentUserID, models.NotificationTypeFollow, nil)

	return c.JSON(http.StatusOK, echo.Map{"following": true})
}

// UnfollowUser unfollows a user; idempotent
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	wasFollowing, err := h.followRepository.IsFollowing(currentUserID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unfollow user")
	}

	if err := h.followRepository.DeleteFollow(currentUserID, targetID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unfollow user")
	}

	// Only move counters when an edge actually existed.
	if wasFollowing {
		h.userRepository.DecrementFollowingCount(currentUserID)
		h.userRepository.DecrementFollowersCount(targetID)
	}

	return c.JSON(http.StatusOK, echo.Map{"following": false})
}

// GetFollowers lists a user's followers
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	users, err := h.followRepository.GetFollowers(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch followers")
	}
	return c.JSON(http.StatusOK, compactUsers(users))
}

// GetFollowing lists the users a user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	users, err := h.followRepository.GetFollowing(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch following")
	}
	return c.JSON(http.StatusOK, compactUsers(users))
}

func compactUsers(users []models.User) []models.UserCompact {
	result := make([]models.UserCompact, len(users))
	for i, u := range users {
		result[i] = u.ToCompact()
	}
	return result
}
