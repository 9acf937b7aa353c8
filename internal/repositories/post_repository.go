package repositories

import (
	"github.com/loopline/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostsByUserID(userID uint) ([]models.Post, error)
	GetFeedPosts(viewerID uint, limit, offset int) ([]models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
	IncrementLikesCount(postID uint) error
	DecrementLikesCount(postID uint) error
	IncrementCommentsCount(postID uint) error
	DecrementCommentsCount(postID uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetPostsByUserID(userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// GetFeedPosts returns the viewer's own posts plus posts from users the
// viewer follows, newest first. The same own-plus-followed rule is used for
// story visibility.
func (r *PostgresPostRepository) GetFeedPosts(viewerID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ? OR user_id IN (?)",
		viewerID,
		r.db.Table("follows").Select("following_id").Where("follower_id = ?", viewerID),
	).Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *PostgresPostRepository) IncrementLikesCount(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).
		Update("likes_count", gorm.Expr("likes_count + 1")).Error
}

func (r *PostgresPostRepository) DecrementLikesCount(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ? AND likes_count > 0", postID).
		Update("likes_count", gorm.Expr("likes_count - 1")).Error
}

func (r *PostgresPostRepository) IncrementCommentsCount(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).
		Update("comments_count", gorm.Expr("comments_count + 1")).Error
}

func (r *PostgresPostRepository) DecrementCommentsCount(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ? AND comments_count > 0", postID).
		Update("comments_count", gorm.Expr("comments_count - 1")).Error
}
