package repositories

import (
	"github.com/loopline/backend/internal/models"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark operations
type BookmarkRepository interface {
	ToggleBookmark(userID, postID uint) (bool, error)
	IsPostBookmarked(userID, postID uint) (bool, error)
	GetBookmarksByUser(userID uint) ([]models.Bookmark, error)
	GetBookmarkedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error)
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// ToggleBookmark flips the saved state for (user, post). Bookmarks never fan
// out notifications.
func (r *PostgresBookmarkRepository) ToggleBookmark(userID, postID uint) (bool, error) {
	return toggleRow(r.db,
		"user_id = ? AND post_id = ?", []interface{}{userID, postID},
		&models.Bookmark{UserID: userID, PostID: postID})
}

func (r *PostgresBookmarkRepository) IsPostBookmarked(userID, postID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Bookmark{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresBookmarkRepository) GetBookmarksByUser(userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&bookmarks).Error
	return bookmarks, err
}

func (r *PostgresBookmarkRepository) GetBookmarkedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var bookmarks []models.Bookmark
	if err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&bookmarks).Error; err != nil {
		return nil, err
	}
	for _, b := range bookmarks {
		result[b.PostID] = true
	}
	return result, nil
}
