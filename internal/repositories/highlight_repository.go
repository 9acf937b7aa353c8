package repositories

import (
	"github.com/loopline/backend/internal/models"
	"gorm.io/gorm"
)

// HighlightRepository defines the interface for highlight operations
type HighlightRepository interface {
	CreateHighlight(highlight *models.Highlight, storyIDs []uint) error
	GetHighlightByID(id uint) (*models.Highlight, error)
	GetHighlightsByUser(userID uint) ([]models.Highlight, error)
	GetHighlightStories(highlightID uint) ([]models.Story, error)
	UpdateHighlight(highlight *models.Highlight) error
	ReplaceStories(highlightID uint, storyIDs []uint) error
	DeleteHighlight(id uint) error
}

type postgresHighlightRepository struct {
	db *gorm.DB
}

func NewPostgresHighlightRepository(db *gorm.DB) HighlightRepository {
	return &postgresHighlightRepository{db: db}
}

// CreateHighlight inserts the highlight and its ordered story references in
// one transaction. SortOrder preserves the caller-supplied order.
func (r *postgresHighlightRepository) CreateHighlight(highlight *models.Highlight, storyIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(highlight).Error; err != nil {
			return err
		}
		return createHighlightStories(tx, highlight.ID, storyIDs)
	})
}

func (r *postgresHighlightRepository) GetHighlightByID(id uint) (*models.Highlight, error) {
	var highlight models.Highlight
	if err := r.db.First(&highlight, id).Error; err != nil {
		return nil, err
	}
	return &highlight, nil
}

func (r *postgresHighlightRepository) GetHighlightsByUser(userID uint) ([]models.Highlight, error) {
	var highlights []models.Highlight
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&highlights).Error
	return highlights, err
}

// GetHighlightStories joins the pinned stories in sort order. Stories that
// have been purged since pinning simply drop out of the join; the highlight
// is never invalidated by dangling references.
func (r *postgresHighlightRepository) GetHighlightStories(highlightID uint) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.Table("stories").
		Joins("JOIN highlight_stories ON highlight_stories.story_id = stories.id").
		Where("highlight_stories.highlight_id = ?", highlightID).
		Order("highlight_stories.sort_order").
		Find(&stories).Error
	return stories, err
}

func (r *postgresHighlightRepository) UpdateHighlight(highlight *models.Highlight) error {
	return r.db.Save(highlight).Error
}

// ReplaceStories swaps the highlight's story list for a new ordered one.
func (r *postgresHighlightRepository) ReplaceStories(highlightID uint, storyIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("highlight_id = ?", highlightID).Delete(&models.HighlightStory{}).Error; err != nil {
			return err
		}
		return createHighlightStories(tx, highlightID, storyIDs)
	})
}

func (r *postgresHighlightRepository) DeleteHighlight(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("highlight_id = ?", id).Delete(&models.HighlightStory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Highlight{}, id).Error
	})
}

func createHighlightStories(tx *gorm.DB, highlightID uint, storyIDs []uint) error {
	for i, storyID := range storyIDs {
		hs := models.HighlightStory{
			HighlightID: highlightID,
			StoryID:     storyID,
			SortOrder:   i,
		}
		if err := tx.Create(&hs).Error; err != nil {
			return err
		}
	}
	return nil
}
