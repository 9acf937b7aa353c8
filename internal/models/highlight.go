package models

import "time"

// Highlight is a named, ordered collection of a user's stories. Stories it
// references may expire or be purged independently; fetching simply omits
// missing stories and the highlight itself stays valid.
type Highlight struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"index"`
	User           User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Title          string    `json:"title"`
	CoverImagePath string    `json:"cover_image_path,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HighlightStory pins a story into a highlight at an explicit position.
// Purging a pinned story drops the pin; the highlight itself stays valid.
type HighlightStory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	HighlightID uint      `json:"highlight_id" gorm:"index;uniqueIndex:idx_highlight_story"`
	Highlight   Highlight `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	StoryID     uint      `json:"story_id" gorm:"index;uniqueIndex:idx_highlight_story"`
	Story       Story     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	SortOrder   int       `json:"sort_order"`
}

// CreateHighlightRequest defines the request body for creating a highlight.
// StoryIDs must be non-empty and ordered; the first story provides the cover.
type CreateHighlightRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=50"`
	StoryIDs []uint `json:"story_ids" validate:"required,min=1"`
}

// UpdateHighlightRequest renames and/or reorders a highlight.
type UpdateHighlightRequest struct {
	Title    string `json:"title,omitempty" validate:"omitempty,min=1,max=50"`
	StoryIDs []uint `json:"story_ids,omitempty" validate:"omitempty,min=1"`
}
