package postgres

import (
	"context"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PushTokenStorage struct {
	db *gorm.DB
}

func NewPushTokenStorage(db *gorm.DB) *PushTokenStorage {
	return &PushTokenStorage{
		db: db,
	}
}

// Create registers a device token. Re-registering the same (user, token) pair
// is a no-op rather than a conflict, multi-device re-installs do that a lot.
func (s *PushTokenStorage) Create(ctx context.Context, token *entity.PushToken) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(token).Error
}

// GetByUser returns every token the user has registered, one per device.
func (s *PushTokenStorage) GetByUser(ctx context.Context, userID string) ([]entity.PushToken, error) {
	var tokens []entity.PushToken
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tokens).Error
	return tokens, err
}

func (s *PushTokenStorage) Delete(ctx context.Context, userID, expoToken string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND expo_token = ?", userID, expoToken).
		Delete(&entity.PushToken{}).Error
}
