package models

import "time"

// Like represents a like on a post. The (post, user) pair is unique; the
// constraint is the correctness guarantee for racing toggles.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	Post      Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark represents a saved post. Independent of Like.
type Bookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_bookmark"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_bookmark"`
	Post      Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike represents a like on a comment
type CommentLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user_like"`
	Comment   Comment   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user_like"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// Follow represents a directed follow edge. No self-follow; unique per pair.
// Both endpoints cascade: deleting a user removes every edge touching them.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	Follower    User      `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	Following   User      `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
}
