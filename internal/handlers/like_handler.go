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

// LikeHandler handles HTTP requests related to post likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
	notifier       *services.Notifier
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository, notifier *services.Notifier) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
		notifier:       notifier,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
	g.GET("/posts/:id/likes/count", h.GetLikesCountForPost)
	g.GET("/posts/:id/likes/status", h.GetUserLikeStatusForPost)
}

// ToggleLike flips the like state for the authenticated user. A creation
// fans out a notification to the post owner; a removal does not.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID := getUserIDFromContext(c)
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

	added, err := h.likeRepository.ToggleLike(postID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle like")
	}

	message := "Like removed"
	if added {
		message = "Post liked"
		h.postRepository.IncrementLikesCount(postID)
		h.notifier.Notify(post.UserID, userID, models.NotificationTypeLike, &post.ID)
	} else {
		h.postRepository.DecrementLikesCount(postID)
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": added, "message": message})
}

// GetLikesCountForPost retrieves the total number of likes for a post
func (h *LikeHandler) GetLikesCountForPost(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	count, err := h.likeRepository.GetLikesCountByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count likes")
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "likes_count": count})
}

// GetUserLikeStatusForPost checks if the authenticated user has liked a post
func (h *LikeHandler) GetUserLikeStatusForPost(c echo.Context) error {
	userID := getUserIDFromContext(c)
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	hasLiked, err := h.likeRepository.HasUserLikedPost(postID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check like status")
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "has_liked": hasLiked})
}
