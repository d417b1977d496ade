package service

import (
	"context"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
)

type PushTokenStorage interface {
	Create(ctx context.Context, token *entity.PushToken) error
	GetByUser(ctx context.Context, userID string) ([]entity.PushToken, error)
	Delete(ctx context.Context, userID, expoToken string) error
}

type PushTokenService struct {
	pushTokenStorage PushTokenStorage
}

func NewPushTokenService(pushTokenStorage PushTokenStorage) *PushTokenService {
	return &PushTokenService{
		pushTokenStorage: pushTokenStorage,
	}
}

// Register stores a device token for the user. Multiple tokens per user are
// expected, one per device.
func (s *PushTokenService) Register(ctx context.Context, userID, expoToken string) error {
	return s.pushTokenStorage.Create(ctx, &entity.PushToken{
		UserID:    userID,
		ExpoToken: expoToken,
	})
}

func (s *PushTokenService) GetByUser(ctx context.Context, userID string) ([]entity.PushToken, error) {
	return s.pushTokenStorage.GetByUser(ctx, userID)
}

func (s *PushTokenService) Delete(ctx context.Context, userID, expoToken string) error {
	return s.pushTokenStorage.Delete(ctx, userID, expoToken)
}
