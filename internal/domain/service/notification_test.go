package service

import (
	"context"
	"testing"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeNotificationStorage struct {
	rows      map[string]*entity.Notification
	markCalls int
}

func newFakeNotificationStorage() *fakeNotificationStorage {
	return &fakeNotificationStorage{rows: make(map[string]*entity.Notification)}
}

func (f *fakeNotificationStorage) Create(_ context.Context, notification *entity.Notification) error {
	f.rows[notification.ID] = notification
	return nil
}

func (f *fakeNotificationStorage) Get(_ context.Context, id string) (*entity.Notification, error) {
	if row, ok := f.rows[id]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationStorage) GetByUser(_ context.Context, userID string, _, _ int) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeNotificationStorage) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, row := range f.rows {
		if row.UserID == userID && !row.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStorage) MarkRead(_ context.Context, id string) error {
	f.rows[id].Read = true
	f.markCalls++
	return nil
}

func (f *fakeNotificationStorage) MarkAllRead(_ context.Context, userID string) error {
	for _, row := range f.rows {
		if row.UserID == userID {
			row.Read = true
		}
	}
	return nil
}

func TestMarkReadIsIdempotent(t *testing.T) {
	storage := newFakeNotificationStorage()
	storage.rows["n1"] = &entity.Notification{ID: "n1", UserID: "u1"}

	svc := NewNotificationService(storage)

	require.NoError(t, svc.MarkRead(context.Background(), "u1", "n1"))
	assert.True(t, storage.rows["n1"].Read)
	assert.Equal(t, 1, storage.markCalls)

	// Second call is a no-op: read stays true, no error, no extra write.
	require.NoError(t, svc.MarkRead(context.Background(), "u1", "n1"))
	assert.True(t, storage.rows["n1"].Read)
	assert.Equal(t, 1, storage.markCalls)
}

func TestMarkReadOwnerOnly(t *testing.T) {
	storage := newFakeNotificationStorage()
	storage.rows["n1"] = &entity.Notification{ID: "n1", UserID: "u1"}

	svc := NewNotificationService(storage)

	err := svc.MarkRead(context.Background(), "u2", "n1")
	assert.ErrorIs(t, err, errorz.ErrForbidden)
	assert.False(t, storage.rows["n1"].Read)
}

func TestMarkReadMissingNotification(t *testing.T) {
	svc := NewNotificationService(newFakeNotificationStorage())

	err := svc.MarkRead(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}
