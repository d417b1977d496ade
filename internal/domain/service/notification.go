package service

import (
	"context"
	"errors"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"gorm.io/gorm"
)

type NotificationStorage interface {
	Create(ctx context.Context, notification *entity.Notification) error
	Get(ctx context.Context, id string) (*entity.Notification, error)
	GetByUser(ctx context.Context, userID string, offset, limit int) ([]entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type NotificationService struct {
	notificationStorage NotificationStorage
}

func NewNotificationService(notificationStorage NotificationStorage) *NotificationService {
	return &NotificationService{
		notificationStorage: notificationStorage,
	}
}

func (s *NotificationService) Create(ctx context.Context, notification *entity.Notification) error {
	return s.notificationStorage.Create(ctx, notification)
}

func (s *NotificationService) GetByUser(ctx context.Context, userID string, offset, limit int) ([]entity.Notification, error) {
	return s.notificationStorage.GetByUser(ctx, userID, offset, limit)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.notificationStorage.CountUnread(ctx, userID)
}

// MarkRead marks one notification read for its owner. Repeating the call is a
// no-op: read stays true and no error is returned.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := s.notificationStorage.Get(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.ErrNotFound
		}
		return err
	}
	if notification.UserID != userID {
		return errorz.ErrForbidden
	}
	if notification.Read {
		return nil
	}
	return s.notificationStorage.MarkRead(ctx, notificationID)
}

// MarkAllRead marks every unread notification of the owner.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificationStorage.MarkAllRead(ctx, userID)
}
