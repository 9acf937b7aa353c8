package models

import "time"

// Story is ephemeral content. Expiry is enforced purely by query-time
// filtering on ExpiresAt plus an explicit admin-triggered purge; no row is
// mutated at the moment of expiry.
type Story struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Content   string    `json:"content,omitempty"`
	ImagePath string    `json:"image_path,omitempty"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	Views     int64     `json:"views" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}

// StoryView records an at-most-once counted view per (story, viewer) pair.
// Purging a story takes its view rows with it.
type StoryView struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	StoryID  uint      `json:"story_id" gorm:"index;uniqueIndex:idx_story_user_view"`
	Story    Story     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID   uint      `json:"user_id" gorm:"index;uniqueIndex:idx_story_user_view"`
	User     User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ViewedAt time.Time `json:"viewed_at"`
}

// CreateStoryRequest defines the request body for creating a story.
// At least one of content and image_path is required; the handler checks that.
type CreateStoryRequest struct {
	Content   string `json:"content,omitempty" validate:"omitempty,max=500"`
	ImagePath string `json:"image_path,omitempty"`
}

// UpdateStoryExpiryRequest is the admin edit path for an explicit expiry.
type UpdateStoryExpiryRequest struct {
	ExpiresAt time.Time `json:"expires_at" validate:"required"`
}
