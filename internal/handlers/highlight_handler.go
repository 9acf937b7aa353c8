package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
	"gorm.io/gorm"
)

// HighlightHandler handles story highlight HTTP requests
type HighlightHandler struct {
	highlightRepository repositories.HighlightRepository
	storyRepository     repositories.StoryRepository
}

// NewHighlightHandler creates a new HighlightHandler
func NewHighlightHandler(highlightRepo repositories.HighlightRepository, storyRepo repositories.StoryRepository) *HighlightHandler {
	return &HighlightHandler{
		highlightRepository: highlightRepo,
		storyRepository:     storyRepo,
	}
}

// RegisterHighlightRoutes registers highlight routes
func (h *HighlightHandler) RegisterHighlightRoutes(g *echo.Group) {
	g.POST("/highlights", h.CreateHighlight)
	g.GET("/users/:id/highlights", h.GetUserHighlights)
	g.GET("/highlights/:id", h.GetHighlight)
	g.PUT("/highlights/:id", h.UpdateHighlight)
	g.DELETE("/highlights/:id", h.DeleteHighlight)
}

// CreateHighlight creates a named ordered collection of the requester's
// stories; the first story supplies the cover image
func (h *HighlightHandler) CreateHighlight(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.CreateHighlightRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Every referenced story must exist and belong to the requester.
	var cover string
	for i, storyID := range req.StoryIDs {
		story, err := h.storyRepository.GetStoryByID(storyID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Story not found")
		}
		if story.UserID != userID {
			return echo.NewHTTPError(http.StatusForbidden, "Story belongs to another user")
		}
		if i == 0 {
			cover = story.ImagePath
		}
	}

	highlight := &models.Highlight{
		UserID:         userID,
		Title:          req.Title,
		CoverImagePath: cover,
	}
	if err := h.highlightRepository.CreateHighlight(highlight, req.StoryIDs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create highlight")
	}
	return c.JSON(http.StatusCreated, highlight)
}

// GetUserHighlights lists a user's highlights
func (h *HighlightHandler) GetUserHighlights(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	highlights, err := h.highlightRepository.GetHighlightsByUser(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch highlights")
	}
	return c.JSON(http.StatusOK, echo.Map{"highlights": highlights})
}

// GetHighlight returns a highlight with its surviving stories in pinned
// order. Purged stories drop out of the join silently.
func (h *HighlightHandler) GetHighlight(c echo.Context) error {
	highlightID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid highlight ID")
	}

	highlight, err := h.highlightRepository.GetHighlightByID(highlightID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Highlight not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch highlight")
	}

	stories, err := h.highlightRepository.GetHighlightStories(highlightID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch highlight stories")
	}
	return c.JSON(http.StatusOK, echo.Map{"highlight": highlight, "stories": stories})
}

// UpdateHighlight renames and/or reorders a highlight; owner or admin only
func (h *HighlightHandler) UpdateHighlight(c echo.Context) error {
	highlightID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid highlight ID")
	}

	var req models.UpdateHighlightRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	highlight, err := h.highlightRepository.GetHighlightByID(highlightID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Highlight not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch highlight")
	}

	if !getClaims(c).CanModify(highlight.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to modify this highlight")
	}

	if req.Title != "" {
		highlight.Title = req.Title
	}
	if len(req.StoryIDs) > 0 {
		for i, storyID := range req.StoryIDs {
			story, err := h.storyRepository.GetStoryByID(storyID)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, "Story not found")
			}
			if story.UserID != highlight.UserID {
				return echo.NewHTTPError(http.StatusForbidden, "Story belongs to another user")
			}
			if i == 0 {
				highlight.CoverImagePath = story.ImagePath
			}
		}
		if err := h.highlightRepository.ReplaceStories(highlightID, req.StoryIDs); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update highlight")
		}
	}

	if err := h.highlightRepository.UpdateHighlight(highlight); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update highlight")
	}
	return c.JSON(http.StatusOK, highlight)
}

// DeleteHighlight removes a highlight; owner or admin only
func (h *HighlightHandler) DeleteHighlight(c echo.Context) error {
	highlightID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid highlight ID")
	}

	highlight, err := h.highlightRepository.GetHighlightByID(highlightID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Highlight not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch highlight")
	}

	if !getClaims(c).CanModify(highlight.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this highlight")
	}

	if err := h.highlightRepository.DeleteHighlight(highlightID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete highlight")
	}
	return c.NoContent(http.StatusNoContent)
}
