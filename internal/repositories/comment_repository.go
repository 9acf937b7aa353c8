package repositories

import (
	"github.com/loopline/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByPostID(postID uint) ([]models.Comment, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(id uint) error
	IncrementLikesCount(commentID uint) error
	DecrementLikesCount(commentID uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID returns a post's comments with root comments in
// creation order, each immediately followed by its replies in creation order.
// Replies to a deleted root keep their parent pointer and still sort under
// the deleted root's slot.
func (r *PostgresCommentRepository) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).
		Order("COALESCE(parent_comment_id, id), id").
		Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteComment removes the row only; replies are not re-parented.
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

func (r *PostgresCommentRepository) IncrementLikesCount(commentID uint) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", commentID).
		Update("likes_count", gorm.Expr("likes_count + 1")).Error
}

func (r *PostgresCommentRepository) DecrementLikesCount(commentID uint) error {
	return r.db.Model(&models.Comment{}).Where("id = ? AND likes_count > 0", commentID).
		Update("likes_count", gorm.Expr("likes_count - 1")).Error
}
