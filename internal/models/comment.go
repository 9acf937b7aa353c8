package models

import "time"

// Comment belongs to exactly one post. ParentCommentID is nil for top-level
// comments; replies reference their root comment. Listing sorts on
// (COALESCE(parent_comment_id, id), id) so each root is followed by its
// replies in creation order. ParentCommentID carries no foreign key: replies
// to a deleted root keep their dangling pointer and still sort under it.
type Comment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	PostID          uint      `json:"post_id" gorm:"index"`
	Post            Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID          uint      `json:"user_id" gorm:"index"`
	User            User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ParentCommentID *uint     `json:"parent_comment_id,omitempty" gorm:"index"`
	Content         string    `json:"content"`
	LikesCount      int64     `json:"likes_count" gorm:"default:0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content         string `json:"content" validate:"required,min=1,max=500"`
	ParentCommentID *uint  `json:"parent_comment_id,omitempty"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
