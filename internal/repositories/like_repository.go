package repositories

import (
	"github.com/loopline/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(postID, userID uint) (bool, error)
	GetLikesCountByPostID(postID uint) (int64, error)
	HasUserLikedPost(postID, userID uint) (bool, error)
	GetLikedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleLike flips the like state for (post, user). Returns true when the
// like now exists, false when it was removed.
func (r *PostgresLikeRepository) ToggleLike(postID, userID uint) (bool, error) {
	return toggleRow(r.db,
		"post_id = ? AND user_id = ?", []interface{}{postID, userID},
		&models.Like{PostID: postID, UserID: userID})
}

func (r *PostgresLikeRepository) GetLikesCountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *PostgresLikeRepository) HasUserLikedPost(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresLikeRepository) GetLikedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var likes []models.Like
	if err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&likes).Error; err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.PostID] = true
	}
	return result, nil
}
