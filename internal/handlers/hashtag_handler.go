package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
	"gorm.io/gorm"
)

// HashtagHandler handles hashtag-related HTTP requests
type HashtagHandler struct {
	hashtagRepository repositories.HashtagRepository
	postRepository    repositories.PostRepository
}

// NewHashtagHandler creates a new HashtagHandler
func NewHashtagHandler(hashtagRepo repositories.HashtagRepository, postRepo repositories.PostRepository) *HashtagHandler {
	return &HashtagHandler{
		hashtagRepository: hashtagRepo,
		postRepository:    postRepo,
	}
}

// RegisterHashtagRoutes registers hashtag routes
func (h *HashtagHandler) RegisterHashtagRoutes(g *echo.Group) {
	g.GET("/hashtags/trending", h.GetTrending)
	g.GET("/hashtags/:name/posts", h.GetPostsByHashtag)
}

// RegisterAdminHashtagRoutes registers admin-only hashtag routes
func (h *HashtagHandler) RegisterAdminHashtagRoutes(g *echo.Group) {
	g.POST("/hashtags", h.CreateHashtag)
	g.PUT("/hashtags/:id/block", h.BlockHashtag)
	g.PUT("/hashtags/:id/unblock", h.UnblockHashtag)
}

// CreateHashtag creates a hashtag directly; a name collision is a conflict
func (h *HashtagHandler) CreateHashtag(c echo.Context) error {
	req := new(models.CreateHashtagRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	tag := &models.Hashtag{Name: strings.ToLower(strings.TrimPrefix(req.Name, "#"))}
	if err := h.hashtagRepository.CreateHashtag(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Hashtag already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create hashtag")
	}
	return c.JSON(http.StatusCreated, tag)
}

// GetTrending returns the most used non-blocked hashtags
func (h *HashtagHandler) GetTrending(c echo.Context) error {
	_, limit := parsePagination(c)

	hashtags, err := h.hashtagRepository.GetTrending(limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch trending hashtags")
	}
	return c.JSON(http.StatusOK, echo.Map{"hashtags": hashtags})
}

// GetPostsByHashtag returns the posts tagged with the given hashtag name
func (h *HashtagHandler) GetPostsByHashtag(c echo.Context) error {
	name := strings.ToLower(strings.TrimPrefix(c.Param("name"), "#"))
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid hashtag name")
	}

	hashtag, err := h.hashtagRepository.GetByName(name)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Hashtag not found")
	}
	if hashtag.IsBlocked {
		return echo.NewHTTPError(http.StatusNotFound, "Hashtag not found")
	}

	postIDs, err := h.hashtagRepository.GetPostIDsByHashtag(hashtag.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}

	posts := make([]models.Post, 0, len(postIDs))
	for _, postID := range postIDs {
		if post, err := h.postRepository.GetPostByID(postID); err == nil {
			posts = append(posts, *post)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hashtag": hashtag,
		"posts":   posts,
	})
}

// BlockHashtag hides a hashtag from trending and lookups
func (h *HashtagHandler) BlockHashtag(c echo.Context) error {
	hashtagID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid hashtag ID")
	}

	if err := h.hashtagRepository.SetBlocked(hashtagID, true); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to block hashtag")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// UnblockHashtag restores a blocked hashtag
func (h *HashtagHandler) UnblockHashtag(c echo.Context) error {
	hashtagID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid hashtag ID")
	}

	if err := h.hashtagRepository.SetBlocked(hashtagID, false); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unblock hashtag")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
