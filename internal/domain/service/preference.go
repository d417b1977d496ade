package service

import (
	"context"
	"errors"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
	"gorm.io/gorm"
)

type PreferenceStorage interface {
	Get(ctx context.Context, userID string) (*entity.NotificationPreference, error)
	Create(ctx context.Context, preference *entity.NotificationPreference) error
	Upsert(ctx context.Context, preference *entity.NotificationPreference) error
}

type PreferenceService struct {
	preferenceStorage PreferenceStorage
	logger            *types.Logger
}

func NewPreferenceService(preferenceStorage PreferenceStorage, logger *types.Logger) *PreferenceService {
	return &PreferenceService{
		preferenceStorage: preferenceStorage,
		logger:            logger,
	}
}

// Get returns the user's preference row, creating the default-allow row on
// first access.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*entity.NotificationPreference, error) {
	preference, err := s.preferenceStorage.Get(ctx, userID)
	if err == nil {
		return preference, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := entity.NewNotificationPreference(userID)
	if errCreate := s.preferenceStorage.Create(ctx, &created); errCreate != nil {
		return nil, errCreate
	}
	return &created, nil
}

// Update replaces the user's toggles wholesale.
func (s *PreferenceService) Update(ctx context.Context, preference *entity.NotificationPreference) error {
	return s.preferenceStorage.Upsert(ctx, preference)
}

// IsChannelEnabled is the preference gate consulted before outbound dispatch.
// A missing row means all channels enabled; a storage error is logged and
// treated as enabled too, the gate never fails a dispatch on its own.
func (s *PreferenceService) IsChannelEnabled(ctx context.Context, userID string, channel entity.Channel, category entity.Category) bool {
	preference, err := s.preferenceStorage.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warnf("preference lookup for %s failed, defaulting to enabled: %v", userID, err)
		}
		return true
	}
	return preference.Enabled(channel, category)
}
