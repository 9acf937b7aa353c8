package repositories

import (
	"github.com/loopline/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetMessageByID(id uint) (*models.Message, error)
	GetConversation(userID, peerID uint, limit, offset int) ([]models.Message, error)
	GetConversationPeers(userID uint) ([]uint, error)
	DeleteMessage(id uint) error
}

type postgresMessageRepository struct {
	db *gorm.DB
}

func NewPostgresMessageRepository(db *gorm.DB) MessageRepository {
	return &postgresMessageRepository{db: db}
}

func (r *postgresMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *postgresMessageRepository) GetMessageByID(id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// GetConversation returns messages between two users in both directions,
// chronological.
func (r *postgresMessageRepository) GetConversation(userID, peerID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, peerID, peerID, userID,
	).Order("created_at ASC").Limit(limit).Offset(offset).Find(&messages).Error
	return messages, err
}

// GetConversationPeers returns the distinct user ids the given user has
// exchanged messages with, most recent conversation first.
func (r *postgresMessageRepository) GetConversationPeers(userID uint) ([]uint, error) {
	var peers []uint
	err := r.db.Model(&models.Message{}).
		Select("CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS peer_id", userID).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Group("peer_id").
		Order("MAX(created_at) DESC").
		Pluck("peer_id", &peers).Error
	return peers, err
}

func (r *postgresMessageRepository) DeleteMessage(id uint) error {
	return r.db.Delete(&models.Message{}, id).Error
}
