package services

import (
	"errors"
	"testing"

	"github.com/loopline/backend/internal/models"
	"go.uber.org/zap"
)

type fakeNotificationRepo struct {
	created []models.Notification
	err     error
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(uint, int, int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (f *fakeNotificationRepo) ListAll(int, int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (f *fakeNotificationRepo) GetUnreadCount(uint) (int64, error) { return 0, nil }
func (f *fakeNotificationRepo) MarkAsRead(uint) error              { return nil }
func (f *fakeNotificationRepo) MarkAllAsRead(uint) error           { return nil }
func (f *fakeNotificationRepo) DeleteNotification(uint) error      { return nil }

func TestNotifySuppressesSelfNotification(t *testing.T) {
	repo := &fakeNotificationRepo{}
	n := NewNotifier(repo, zap.NewNop())

	postID := uint(5)
	n.Notify(1, 1, models.NotificationTypeLike, &postID)

	if len(repo.created) != 0 {
		t.Errorf("self-directed event wrote %d notifications, want 0", len(repo.created))
	}
}

func TestNotifyWritesForOtherUser(t *testing.T) {
	repo := &fakeNotificationRepo{}
	n := NewNotifier(repo, zap.NewNop())

	postID := uint(5)
	n.Notify(1, 2, models.NotificationTypeLike, &postID)

	if len(repo.created) != 1 {
		t.Fatalf("wrote %d notifications, want 1", len(repo.created))
	}
	got := repo.created[0]
	if got.RecipientID != 1 || got.ActorID != 2 || got.Type != models.NotificationTypeLike {
		t.Errorf("notification = %+v, want recipient 1, actor 2, type like", got)
	}
	if got.PostID == nil || *got.PostID != 5 {
		t.Errorf("PostID = %v, want 5", got.PostID)
	}
	if got.IsRead {
		t.Error("new notification created as read")
	}
}

func TestNotifySwallowsWriteFailure(t *testing.T) {
	repo := &fakeNotificationRepo{err: errors.New("store down")}
	n := NewNotifier(repo, zap.NewNop())

	// Must not panic or propagate: engagement state is authoritative.
	n.Notify(1, 2, models.NotificationTypeFollow, nil)
}
