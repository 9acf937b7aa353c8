package repositories

import (
	"errors"
	"time"

	"github.com/loopline/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	CreateStory(story *models.Story) error
	GetStoryByID(id uint) (*models.Story, error)
	GetActiveStories(viewerID uint) ([]models.Story, error)
	GetActiveStoriesByUser(userID uint) ([]models.Story, error)
	AddView(storyID, userID uint) (bool, error)
	UpdateExpiry(storyID uint, expiresAt time.Time) error
	DeleteStory(id uint) error
	DeleteExpired() (int64, error)
}

type postgresStoryRepository struct {
	db *gorm.DB
}

func NewPostgresStoryRepository(db *gorm.DB) StoryRepository {
	return &postgresStoryRepository{db: db}
}

// CreateStory inserts the story, defaulting expiry to 24 hours from creation
// when the caller supplied none.
func (r *postgresStoryRepository) CreateStory(story *models.Story) error {
	if story.ExpiresAt.IsZero() {
		story.ExpiresAt = time.Now().Add(24 * time.Hour)
	}
	return r.db.Create(story).Error
}

// GetStoryByID fetches by id regardless of expiry: expired stories remain
// queryable until purged.
func (r *postgresStoryRepository) GetStoryByID(id uint) (*models.Story, error) {
	var story models.Story
	if err := r.db.First(&story, id).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

// GetActiveStories returns unexpired stories owned by the viewer or by users
// the viewer follows, newest first. Expiry is a read-time predicate; nothing
// is mutated when a story crosses its expiry.
func (r *postgresStoryRepository) GetActiveStories(viewerID uint) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.Where("expires_at > ? AND (user_id = ? OR user_id IN (?))",
		time.Now(), viewerID,
		r.db.Table("follows").Select("following_id").Where("follower_id = ?", viewerID),
	).Order("created_at DESC").Find(&stories).Error
	return stories, err
}

func (r *postgresStoryRepository) GetActiveStoriesByUser(userID uint) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at DESC").Find(&stories).Error
	return stories, err
}

// AddView records an at-most-once counted view. The (story, viewer) insert
// and the counter increment run in one transaction; a duplicate view leaves
// the counter untouched and returns false.
func (r *postgresStoryRepository) AddView(storyID, userID uint) (bool, error) {
	viewed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		view := models.StoryView{StoryID: storyID, UserID: userID, ViewedAt: time.Now()}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&view)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return nil
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		viewed = true
		return tx.Model(&models.Story{}).Where("id = ?", storyID).
			Update("views", gorm.Expr("views + 1")).Error
	})
	return viewed, err
}

// UpdateExpiry is the admin edit path for an explicit expiry.
func (r *postgresStoryRepository) UpdateExpiry(storyID uint, expiresAt time.Time) error {
	return r.db.Model(&models.Story{}).Where("id = ?", storyID).
		Update("expires_at", expiresAt).Error
}

func (r *postgresStoryRepository) DeleteStory(id uint) error {
	return r.db.Delete(&models.Story{}, id).Error
}

// DeleteExpired purges every story past its expiry and returns the exact
// count removed. Calling it again with no new expirations removes 0.
func (r *postgresStoryRepository) DeleteExpired() (int64, error) {
	res := r.db.Where("expires_at < ?", time.Now()).Delete(&models.Story{})
	return res.RowsAffected, res.Error
}
