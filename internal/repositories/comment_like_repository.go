package repositories

import (
	"github.com/loopline/backend/internal/models"
	"gorm.io/gorm"
)

// CommentLikeRepository defines the interface for comment like operations
type CommentLikeRepository interface {
	ToggleCommentLike(commentID, userID uint) (bool, error)
	GetLikesCountByCommentID(commentID uint) (int64, error)
	HasUserLikedComment(commentID, userID uint) (bool, error)
}

// PostgresCommentLikeRepository implements CommentLikeRepository
type PostgresCommentLikeRepository struct {
	db *gorm.DB
}

func NewPostgresCommentLikeRepository(db *gorm.DB) *PostgresCommentLikeRepository {
	return &PostgresCommentLikeRepository{db: db}
}

// ToggleCommentLike follows the same toggle contract as post likes but never
// fans out notifications.
func (r *PostgresCommentLikeRepository) ToggleCommentLike(commentID, userID uint) (bool, error) {
	return toggleRow(r.db,
		"comment_id = ? AND user_id = ?", []interface{}{commentID, userID},
		&models.CommentLike{CommentID: commentID, UserID: userID})
}

func (r *PostgresCommentLikeRepository) GetLikesCountByCommentID(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

func (r *PostgresCommentLikeRepository) HasUserLikedComment(commentID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error
	return count > 0, err
}
