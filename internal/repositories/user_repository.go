package repositories

import (
	"github.com/loopline/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	UpdatePassword(userID uint, hashed string) error
	DeleteUser(id uint) error
	SearchUsers(query string, limit int) ([]models.User, error)
	ListUsers(page, limit int) ([]models.User, int64, error)
	IncrementFollowersCount(userID uint) error
	DecrementFollowersCount(userID uint) error
	IncrementFollowingCount(userID uint) error
	DecrementFollowingCount(userID uint) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *PostgresUserRepository) UpdatePassword(userID uint, hashed string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("password", hashed).Error
}

// DeleteUser removes the user row. Owned rows (posts, follows, likes, ...)
// are removed by store-level foreign-key cascades, not here.
func (r *PostgresUserRepository) DeleteUser(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

func (r *PostgresUserRepository) SearchUsers(query string, limit int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := r.db.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern).
		Limit(limit).Find(&users).Error
	return users, err
}

func (r *PostgresUserRepository) ListUsers(page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("id ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error
	return users, total, err
}

// Follower/following counters move only via single-row atomic updates to
// avoid lost increments under concurrent requests.

func (r *PostgresUserRepository) IncrementFollowersCount(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("followers_count", gorm.Expr("followers_count + 1")).Error
}

func (r *PostgresUserRepository) DecrementFollowersCount(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ? AND followers_count > 0", userID).
		Update("followers_count", gorm.Expr("followers_count - 1")).Error
}

func (r *PostgresUserRepository) IncrementFollowingCount(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("following_count", gorm.Expr("following_count + 1")).Error
}

func (r *PostgresUserRepository) DecrementFollowingCount(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ? AND following_count > 0", userID).
		Update("following_count", gorm.Expr("following_count - 1")).Error
}
