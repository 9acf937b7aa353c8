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

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	hashtags       *services.HashtagService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, hashtags *services.HashtagService) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		hashtags:       hashtags,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/users/:id/posts", h.GetPostsByUser)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post and links its hashtags
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		UserID:    getUserIDFromContext(c),
		Content:   services.SanitizeUserText(req.Content),
		ImagePath: req.ImagePath,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create post")
	}

	h.hashtags.LinkPostHashtags(post.ID, post.Content)

	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a single post
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}
	return c.JSON(http.StatusOK, post)
}

// GetPostsByUser lists a user's posts, newest first
func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	posts, err := h.postRepository.GetPostsByUserID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}
	return c.JSON(http.StatusOK, posts)
}

// UpdatePost updates an existing post; owner or admin only
func (h *PostHandler) UpdatePost(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}

	if !getClaims(c).CanModify(post.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to modify this post")
	}

	if req.Content != "" {
		post.Content = services.SanitizeUserText(req.Content)
	}
	if req.ImagePath != "" {
		post.ImagePath = req.ImagePath
	}

	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update post")
	}

	// Relink hashtags against the edited content.
	h.hashtags.UnlinkPostHashtags(post.ID)
	h.hashtags.LinkPostHashtags(post.ID, post.Content)

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post; owner or admin only
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}

	if !getClaims(c).CanModify(post.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this post")
	}

	h.hashtags.UnlinkPostHashtags(post.ID)

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete post")
	}
	return c.NoContent(http.StatusNoContent)
}
