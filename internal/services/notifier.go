package services

import (
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
	"go.uber.org/zap"
)

// Notifier records notifications as side effects of engagement events.
// Notifications are best-effort: the engagement itself has already been
// committed, so a failed write is logged and swallowed.
type Notifier struct {
	repo   repositories.NotificationRepository
	logger *zap.Logger
}

func NewNotifier(repo repositories.NotificationRepository, logger *zap.Logger) *Notifier {
	return &Notifier{repo: repo, logger: logger}
}

// Notify writes one unread notification row. Self-directed events
// (recipient == actor) are suppressed entirely.
func (n *Notifier) Notify(recipientID, actorID uint, notifType string, postID *uint) {
	if recipientID == actorID {
		return
	}
	notif := &models.Notification{
		Type:        notifType,
		ActorID:     actorID,
		RecipientID: recipientID,
		PostID:      postID,
	}
	if err := n.repo.CreateNotification(notif); err != nil {
		n.logger.Warn("notification write failed",
			zap.String("type", notifType),
			zap.Uint("recipient_id", recipientID),
			zap.Uint("actor_id", actorID),
			zap.Error(err))
	}
}
