package models

import "time"

// Post represents a feed post. Content is plain text; ImagePath is the relative
// path returned by the upload endpoint. Deleting the owning user removes the
// post through the store-level cascade.
type Post struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index"`
	User          User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Content       string    `json:"content"`
	ImagePath     string    `json:"image_path,omitempty"`
	LikesCount    int64     `json:"likes_count" gorm:"default:0"`
	CommentsCount int64     `json:"comments_count" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content   string `json:"content" validate:"required,min=1,max=2000"`
	ImagePath string `json:"image_path,omitempty"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Content   string `json:"content,omitempty" validate:"omitempty,min=1,max=2000"`
	ImagePath string `json:"image_path,omitempty"`
}
