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

// CommentHandler handles HTTP requests related to comments and comment likes
type CommentHandler struct {
	commentRepository     repositories.CommentRepository
	postRepository        repositories.PostRepository
	commentLikeRepository repositories.CommentLikeRepository
	notifier              *services.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, commentLikeRepo repositories.CommentLikeRepository, notifier *services.Notifier) *CommentHandler {
	return &CommentHandler{
		commentRepository:     commentRepo,
		postRepository:        postRepo,
		commentLikeRepository: commentLikeRepo,
		notifier:              notifier,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.POST("/comments/:id/like", h.ToggleCommentLike)
	g.GET("/comments/:id/likes", h.GetCommentLikes)
}

// GetCommentLikes returns the like count and the viewer's like state
func (h *CommentHandler) GetCommentLikes(c echo.Context) error {
	userID := getUserIDFromContext(c)
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}
	if _, err := h.commentRepository.GetCommentByID(commentID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	count, err := h.commentLikeRepository.GetLikesCountByCommentID(commentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count likes")
	}
	liked, err := h.commentLikeRepository.HasUserLikedComment(commentID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch like status")
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count, "liked": liked})
}

// CreateComment creates a new comment on a post, optionally as a reply, and
// fans out a notification to the post owner
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := getUserIDFromContext(c)
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CreateCommentRequest
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

	if req.ParentCommentID != nil {
		parent, err := h.commentRepository.GetCommentByID(*req.ParentCommentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
		if parent.PostID != postID {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent comment belongs to another post")
		}
	}

	comment := &models.Comment{
		PostID:          postID,
		UserID:          userID,
		ParentCommentID: req.ParentCommentID,
		Content:         services.SanitizeUserText(req.Content),
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create comment")
	}

	h.postRepository.IncrementCommentsCount(postID)
	h.notifier.Notify(post.UserID, userID, models.NotificationTypeComment, &post.ID)

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPostID lists a post's comments: roots in creation order, each
// followed by its replies in creation order
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comments")
	}
	return c.JSON(http.StatusOK, comments)
}

// UpdateComment updates a comment; owner or admin only
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comment")
	}

	if !getClaims(c).CanModify(comment.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to modify this comment")
	}

	comment.Content = services.SanitizeUserText(req.Content)
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update comment")
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment; owner or admin only. Replies are not
// re-parented.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comment")
	}

	if !getClaims(c).CanModify(comment.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(commentID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete comment")
	}
	h.postRepository.DecrementCommentsCount(comment.PostID)

	return c.NoContent(http.StatusNoContent)
}

// ToggleCommentLike flips the like state on a comment. Unlike post likes,
// comment likes never fan out notifications.
func (h *CommentHandler) ToggleCommentLike(c echo.Context) error {
	userID := getUserIDFromContext(c)
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	if _, err := h.commentRepository.GetCommentByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comment")
	}

	added, err := h.commentLikeRepository.ToggleCommentLike(commentID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle comment like")
	}

	if added {
		h.commentRepository.IncrementLikesCount(commentID)
	} else {
		h.commentRepository.DecrementLikesCount(commentID)
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": added})
}
