package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
	"gorm.io/gorm"
)

// BookmarkHandler handles saved-post HTTP requests
type BookmarkHandler struct {
	bookmarkRepository repositories.BookmarkRepository
	postRepository     repositories.PostRepository
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkRepo repositories.BookmarkRepository, postRepo repositories.PostRepository) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkRepository: bookmarkRepo,
		postRepository:     postRepo,
	}
}

// RegisterBookmarkRoutes registers bookmark routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.POST("/posts/:id/bookmark", h.ToggleBookmark)
	g.GET("/posts/:id/bookmark/status", h.GetBookmarkStatus)
	g.GET("/bookmarks", h.GetBookmarkedPosts)
}

// GetBookmarkStatus reports whether the authenticated user saved the post
func (h *BookmarkHandler) GetBookmarkStatus(c echo.Context) error {
	userID := getUserIDFromContext(c)
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	bookmarked, err := h.bookmarkRepository.IsPostBookmarked(userID, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch bookmark status")
	}
	return c.JSON(http.StatusOK, echo.Map{"bookmarked": bookmarked})
}

// ToggleBookmark flips the saved state. No notification fan-out.
func (h *BookmarkHandler) ToggleBookmark(c echo.Context) error {
	userID := getUserIDFromContext(c)
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}

	added, err := h.bookmarkRepository.ToggleBookmark(userID, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle bookmark")
	}

	message := "Bookmark removed"
	if added {
		message = "Post saved"
	}
	return c.JSON(http.StatusOK, echo.Map{"bookmarked": added, "message": message})
}

// GetBookmarkedPosts lists the authenticated user's saved posts
func (h *BookmarkHandler) GetBookmarkedPosts(c echo.Context) error {
	userID := getUserIDFromContext(c)

	bookmarks, err := h.bookmarkRepository.GetBookmarksByUser(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch bookmarks")
	}

	posts := make([]models.Post, 0, len(bookmarks))
	for _, b := range bookmarks {
		if post, err := h.postRepository.GetPostByID(b.PostID); err == nil {
			posts = append(posts, *post)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}
