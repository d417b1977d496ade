package service

import (
	"context"
	"testing"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakePreferenceStorage struct {
	rows    map[string]*entity.NotificationPreference
	created int
}

func newFakePreferenceStorage() *fakePreferenceStorage {
	return &fakePreferenceStorage{rows: make(map[string]*entity.NotificationPreference)}
}

func (f *fakePreferenceStorage) Get(_ context.Context, userID string) (*entity.NotificationPreference, error) {
	if row, ok := f.rows[userID]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePreferenceStorage) Create(_ context.Context, preference *entity.NotificationPreference) error {
	f.rows[preference.UserID] = preference
	f.created++
	return nil
}

func (f *fakePreferenceStorage) Upsert(_ context.Context, preference *entity.NotificationPreference) error {
	f.rows[preference.UserID] = preference
	return nil
}

func TestIsChannelEnabledDefaultsToTrueWithoutRow(t *testing.T) {
	svc := NewPreferenceService(newFakePreferenceStorage(), newTestLogger())

	for _, channel := range []entity.Channel{entity.ChannelEmail, entity.ChannelPush} {
		for _, category := range []entity.Category{
			entity.CategoryMatchReminder,
			entity.CategoryMatchUpdate,
			entity.CategoryPasswordReset,
			entity.CategoryVerification,
			entity.CategoryJoinRequest,
			entity.CategoryInvitation,
			entity.CategoryChatMessage,
			entity.CategoryTeamUpdate,
		} {
			assert.True(t, svc.IsChannelEnabled(context.Background(), "u1", channel, category),
				"expected %s/%s enabled by default", channel, category)
		}
	}
}

func TestIsChannelEnabledHonorsToggles(t *testing.T) {
	storage := newFakePreferenceStorage()
	row := entity.NewNotificationPreference("u1")
	row.PushJoinRequest = false
	storage.rows["u1"] = &row

	svc := NewPreferenceService(storage, newTestLogger())

	assert.False(t, svc.IsChannelEnabled(context.Background(), "u1", entity.ChannelPush, entity.CategoryJoinRequest))
	assert.True(t, svc.IsChannelEnabled(context.Background(), "u1", entity.ChannelPush, entity.CategoryInvitation))
	assert.True(t, svc.IsChannelEnabled(context.Background(), "u1", entity.ChannelEmail, entity.CategoryVerification))
}

func TestGetCreatesDefaultRowLazily(t *testing.T) {
	storage := newFakePreferenceStorage()
	svc := NewPreferenceService(storage, newTestLogger())

	preference, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, storage.created)
	assert.True(t, preference.EmailVerification)
	assert.True(t, preference.PushMatchReminder)

	_, err = svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, storage.created, "second access must reuse the row")
}
