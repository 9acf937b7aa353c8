package repositories

import (
	"errors"

	"github.com/loopline/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HashtagRepository defines the interface for hashtag operations
type HashtagRepository interface {
	CreateHashtag(tag *models.Hashtag) error
	GetOrCreate(name string) (*models.Hashtag, error)
	GetByName(name string) (*models.Hashtag, error)
	LinkPost(postID, hashtagID uint) error
	UnlinkPost(postID uint) error
	GetTrending(limit int) ([]models.Hashtag, error)
	GetPostIDsByHashtag(hashtagID uint) ([]uint, error)
	SetBlocked(hashtagID uint, blocked bool) error
}

type postgresHashtagRepository struct {
	db *gorm.DB
}

func NewPostgresHashtagRepository(db *gorm.DB) HashtagRepository {
	return &postgresHashtagRepository{db: db}
}

// CreateHashtag is the explicit creation path; a name collision surfaces as
// gorm.ErrDuplicatedKey, unlike GetOrCreate which absorbs it.
func (r *postgresHashtagRepository) CreateHashtag(tag *models.Hashtag) error {
	return r.db.Create(tag).Error
}

// GetOrCreate returns the hashtag row for name, creating it if absent. A
// creation race is resolved by re-reading the winner's row.
func (r *postgresHashtagRepository) GetOrCreate(name string) (*models.Hashtag, error) {
	var tag models.Hashtag
	err := r.db.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Hashtag{Name: name}
	if err := r.db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
				return nil, err
			}
			return &tag, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (r *postgresHashtagRepository) GetByName(name string) (*models.Hashtag, error) {
	var tag models.Hashtag
	if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// LinkPost attaches a hashtag to a post. A duplicate link is swallowed and
// the usage counter only moves when a link row was actually inserted.
func (r *postgresHashtagRepository) LinkPost(postID, hashtagID uint) error {
	link := models.PostHashtag{PostID: postID, HashtagID: hashtagID}
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}
	return r.db.Model(&models.Hashtag{}).Where("id = ?", hashtagID).
		Update("usage_count", gorm.Expr("usage_count + 1")).Error
}

// UnlinkPost removes all hashtag links of a deleted post, decrementing each
// tag's usage counter, floored at zero. Decrements and link deletion commit
// together or not at all.
func (r *postgresHashtagRepository) UnlinkPost(postID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var links []models.PostHashtag
		if err := tx.Where("post_id = ?", postID).Find(&links).Error; err != nil {
			return err
		}
		for _, link := range links {
			if err := tx.Model(&models.Hashtag{}).
				Where("id = ? AND usage_count > 0", link.HashtagID).
				Update("usage_count", gorm.Expr("usage_count - 1")).Error; err != nil {
				return err
			}
		}
		return tx.Where("post_id = ?", postID).Delete(&models.PostHashtag{}).Error
	})
}

// GetTrending returns the most-used hashtags, excluding blocked ones.
func (r *postgresHashtagRepository) GetTrending(limit int) ([]models.Hashtag, error) {
	var tags []models.Hashtag
	err := r.db.Where("is_blocked = false AND usage_count > 0").
		Order("usage_count DESC").Limit(limit).Find(&tags).Error
	return tags, err
}

func (r *postgresHashtagRepository) GetPostIDsByHashtag(hashtagID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.PostHashtag{}).Where("hashtag_id = ?", hashtagID).Pluck("post_id", &ids).Error
	return ids, err
}

func (r *postgresHashtagRepository) SetBlocked(hashtagID uint, blocked bool) error {
	return r.db.Model(&models.Hashtag{}).Where("id = ?", hashtagID).Update("is_blocked", blocked).Error
}
