package service

import (
	"context"
	"testing"
	"time"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMatchStorage struct {
	rows  map[string]*entity.Match
	saved *entity.Match
}

func newFakeMatchStorage() *fakeMatchStorage {
	return &fakeMatchStorage{rows: make(map[string]*entity.Match)}
}

func (f *fakeMatchStorage) Create(_ context.Context, match *entity.Match) (*entity.Match, error) {
	f.rows[match.ID] = match
	return match, nil
}

func (f *fakeMatchStorage) Get(_ context.Context, id string) (*entity.Match, error) {
	if row, ok := f.rows[id]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMatchStorage) Update(_ context.Context, match *entity.Match) (*entity.Match, error) {
	f.saved = match
	f.rows[match.ID] = match
	return match, nil
}

func (f *fakeMatchStorage) Delete(_ context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeMatchStorage) GetWithPagination(context.Context, int, int, string) ([]entity.Match, error) {
	return nil, nil
}

type fakeMatchCache struct{}

func (fakeMatchCache) Get(context.Context, string) (*entity.Match, error) { return nil, nil }
func (fakeMatchCache) Set(context.Context, *entity.Match, time.Duration)  {}
func (fakeMatchCache) Clear(context.Context, string)                      {}

type fakeEventBus struct {
	published []entity.Event
}

func (f *fakeEventBus) Publish(_ context.Context, _ string, _ string, event entity.Event) error {
	f.published = append(f.published, event)
	return nil
}

func newTestMatchService(storage *fakeMatchStorage) *MatchService {
	publisher := NewPublisher(&fakeEventBus{}, newTestLogger())
	return NewMatchService(storage, fakeMatchCache{}, publisher)
}

func TestUpdatePreservesLifecycleFields(t *testing.T) {
	createdAt := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	storage := newFakeMatchStorage()
	storage.rows["m1"] = &entity.Match{
		ID:         "m1",
		CreatorID:  "creator",
		Title:      "Friday futsal",
		Sport:      "futsal",
		MaxPlayers: 10,
		Status:     entity.MatchStatusInProgress,
		CreatedAt:  createdAt,
	}

	svc := newTestMatchService(storage)

	updated, err := svc.Update(context.Background(), "creator", &entity.Match{
		ID:         "m1",
		Title:      "Friday futsal (moved)",
		Sport:      "futsal",
		MaxPlayers: 12,
	})
	require.NoError(t, err)

	// An edit must not reset the fields the caller cannot touch: the row
	// handed to the storage still carries the running status, the original
	// creation time and the creator.
	require.NotNil(t, storage.saved)
	assert.Equal(t, entity.MatchStatusInProgress, storage.saved.Status)
	assert.Equal(t, createdAt, storage.saved.CreatedAt)
	assert.Equal(t, "creator", storage.saved.CreatorID)

	assert.Equal(t, "Friday futsal (moved)", updated.Title)
	assert.Equal(t, 12, updated.MaxPlayers)
}

func TestUpdateCreatorOnly(t *testing.T) {
	storage := newFakeMatchStorage()
	storage.rows["m1"] = &entity.Match{ID: "m1", CreatorID: "creator", Status: entity.MatchStatusOpen}

	svc := newTestMatchService(storage)

	_, err := svc.Update(context.Background(), "intruder", &entity.Match{ID: "m1", Title: "hijacked"})
	assert.ErrorIs(t, err, errorz.ErrForbidden)
	assert.Nil(t, storage.saved)
}
