package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
)

// FeedHandler assembles the home feed
type FeedHandler struct {
	postRepository     repositories.PostRepository
	userRepository     repositories.UserRepository
	likeRepository     repositories.LikeRepository
	bookmarkRepository repositories.BookmarkRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, likeRepo repositories.LikeRepository, bookmarkRepo repositories.BookmarkRepository) *FeedHandler {
	return &FeedHandler{
		postRepository:     postRepo,
		userRepository:     userRepo,
		likeRepository:     likeRepo,
		bookmarkRepository: bookmarkRepo,
	}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// FeedPost is a post enriched with the viewer's engagement state
type FeedPost struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	HasLiked     bool               `json:"has_liked"`
	IsBookmarked bool               `json:"is_bookmarked"`
}

// GetFeed returns the viewer's own and followed users' posts, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	page, limit := parsePagination(c)

	posts, err := h.postRepository.GetFeedPosts(viewerID, limit, (page-1)*limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch feed")
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}
	likedMap, _ := h.likeRepository.GetLikedPostIDs(viewerID, postIDs)
	bookmarkedMap, _ := h.bookmarkRepository.GetBookmarkedPostIDs(viewerID, postIDs)

	userCache := make(map[uint]models.UserCompact)
	feed := make([]FeedPost, len(posts))
	for i, p := range posts {
		author, ok := userCache[p.UserID]
		if !ok {
			if user, err := h.userRepository.GetUserByID(p.UserID); err == nil {
				author = user.ToCompact()
				userCache[p.UserID] = author
			}
		}
		feed[i] = FeedPost{
			Post:         p,
			Author:       author,
			HasLiked:     likedMap[p.ID],
			IsBookmarked: bookmarkedMap[p.ID],
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": feed, "page": page})
}
