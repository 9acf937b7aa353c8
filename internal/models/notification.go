package models

import "time"

// Notification types produced by engagement fan-out.
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
)

// Notification is written as a side effect of an engagement event, never when
// the actor targets their own content. IsRead is the only mutable state.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	Actor       User      `json:"-" gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Recipient   User      `json:"-" gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
	PostID      *uint     `json:"post_id,omitempty"`
	Post        *Post     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
