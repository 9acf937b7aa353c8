package models

import "time"

// Hashtag is keyed by its lowercase name with the leading '#' stripped.
// UsageCount moves only through atomic single-row updates.
type Hashtag struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"uniqueIndex;size:100"`
	UsageCount int64     `json:"usage_count" gorm:"default:0"`
	IsBlocked  bool      `json:"is_blocked" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateHashtagRequest is the admin direct-creation payload.
type CreateHashtagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// PostHashtag links a post to a hashtag extracted from its content.
type PostHashtag struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	PostID    uint    `json:"post_id" gorm:"index;uniqueIndex:idx_post_hashtag"`
	Post      Post    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	HashtagID uint    `json:"hashtag_id" gorm:"index;uniqueIndex:idx_post_hashtag"`
	Hashtag   Hashtag `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
