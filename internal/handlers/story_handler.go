package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
	"github.com/loopline/backend/internal/services"
	"gorm.io/gorm"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyRepository  repositories.StoryRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyRepo repositories.StoryRepository, userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *StoryHandler {
	return &StoryHandler{
		storyRepository:  storyRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
	}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.CreateStory)
	g.GET("/stories/feed", h.GetStoryFeed)
	g.GET("/users/:id/stories", h.GetUserStories)
	g.GET("/stories/:id", h.GetStory)
	g.POST("/stories/:id/view", h.AddView)
	g.DELETE("/stories/:id", h.DeleteStory)
}

// RegisterAdminStoryRoutes registers operator-only story routes
func (h *StoryHandler) RegisterAdminStoryRoutes(g *echo.Group) {
	g.DELETE("/stories/cleanup/expired", h.DeleteExpiredStories)
	g.PUT("/stories/:id/expiry", h.UpdateStoryExpiry)
}

// StoryResponse is the enriched story response
type StoryResponse struct {
	models.Story
	Author models.UserCompact `json:"author"`
}

// CreateStory creates a story expiring 24 hours from now
func (h *StoryHandler) CreateStory(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Content == "" && req.ImagePath == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Story needs content or an image")
	}

	story := &models.Story{
		UserID:    userID,
		Content:   services.SanitizeUserText(req.Content),
		ImagePath: req.ImagePath,
	}
	if err := h.storyRepository.CreateStory(story); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create story")
	}
	return c.JSON(http.StatusCreated, story)
}

// GetStoryFeed returns active stories owned by the viewer or by users the
// viewer follows
func (h *StoryHandler) GetStoryFeed(c echo.Context) error {
	viewerID := getUserIDFromContext(c)

	stories, err := h.storyRepository.GetActiveStories(viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch stories")
	}

	userCache := make(map[uint]models.UserCompact)
	feed := make([]StoryResponse, len(stories))
	for i, s := range stories {
		author, ok := userCache[s.UserID]
		if !ok {
			if user, err := h.userRepository.GetUserByID(s.UserID); err == nil {
				author = user.ToCompact()
				userCache[s.UserID] = author
			}
		}
		feed[i] = StoryResponse{Story: s, Author: author}
	}
	return c.JSON(http.StatusOK, echo.Map{"stories": feed})
}

// GetUserStories returns a user's still-active stories. Stories are visible
// only to their author and the author's followers.
func (h *StoryHandler) GetUserStories(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if viewerID != userID {
		following, err := h.followRepository.IsFollowing(viewerID, userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch stories")
		}
		if !following {
			return echo.NewHTTPError(http.StatusForbidden, "Stories are visible to followers only")
		}
	}

	stories, err := h.storyRepository.GetActiveStoriesByUser(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch stories")
	}
	return c.JSON(http.StatusOK, echo.Map{"stories": stories})
}

// GetStory fetches a story by id. Expired stories remain fetchable until the
// purge sweep removes them.
func (h *StoryHandler) GetStory(c echo.Context) error {
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	story, err := h.storyRepository.GetStoryByID(storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Story not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch story")
	}
	return c.JSON(http.StatusOK, story)
}

// AddView records an at-most-once counted view for the authenticated user
func (h *StoryHandler) AddView(c echo.Context) error {
	userID := getUserIDFromContext(c)
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	story, err := h.storyRepository.GetStoryByID(storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Story not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch story")
	}
	if !story.ExpiresAt.After(time.Now()) {
		return echo.NewHTTPError(http.StatusNotFound, "Story has expired")
	}

	viewed, err := h.storyRepository.AddView(storyID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record view")
	}
	return c.JSON(http.StatusOK, echo.Map{"viewed": viewed})
}

// DeleteStory removes a story; owner or admin only
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	story, err := h.storyRepository.GetStoryByID(storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Story not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch story")
	}

	if !getClaims(c).CanModify(story.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this story")
	}

	if err := h.storyRepository.DeleteStory(storyID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete story")
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateStoryExpiry is the admin path for setting an explicit expiry
func (h *StoryHandler) UpdateStoryExpiry(c echo.Context) error {
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	var req models.UpdateStoryExpiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.storyRepository.GetStoryByID(storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Story not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch story")
	}

	if err := h.storyRepository.UpdateExpiry(storyID, req.ExpiresAt); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update expiry")
	}
	return c.JSON(http.StatusOK, echo.Map{"expires_at": req.ExpiresAt})
}

// DeleteExpiredStories purges every story past its expiry and reports the
// count removed. This is the only path from Expired to Purged; there is no
// background timer.
func (h *StoryHandler) DeleteExpiredStories(c echo.Context) error {
	deleted, err := h.storyRepository.DeleteExpired()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to purge stories")
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted_count": deleted})
}
