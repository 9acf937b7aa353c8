package models

import "time"

// Message is a direct message between two users. Deleting either party
// removes the conversation rows through the cascade.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"index"`
	Sender     User      `json:"-" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	ReceiverID uint      `json:"receiver_id" gorm:"index"`
	Receiver   User      `json:"-" gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	Content    string    `json:"content"`
	ImagePath  string    `json:"image_path,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Content    string `json:"content,omitempty" validate:"omitempty,max=2000"`
	ImagePath  string `json:"image_path,omitempty"`
}
