package postgres

import (
	"context"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"gorm.io/gorm"
)

type PreferenceStorage struct {
	db *gorm.DB
}

func NewPreferenceStorage(db *gorm.DB) *PreferenceStorage {
	return &PreferenceStorage{
		db: db,
	}
}

func (s *PreferenceStorage) Get(ctx context.Context, userID string) (*entity.NotificationPreference, error) {
	var preference entity.NotificationPreference
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&preference).Error
	return &preference, err
}

func (s *PreferenceStorage) Create(ctx context.Context, preference *entity.NotificationPreference) error {
	return s.db.WithContext(ctx).Create(preference).Error
}

// Upsert replaces the whole row, creating it if the user has none yet.
func (s *PreferenceStorage) Upsert(ctx context.Context, preference *entity.NotificationPreference) error {
	return s.db.WithContext(ctx).Save(preference).Error
}
