package postgres

import (
	"context"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"gorm.io/gorm"
)

type MatchStorage struct {
	db *gorm.DB
}

func NewMatchStorage(db *gorm.DB) *MatchStorage {
	return &MatchStorage{
		db: db,
	}
}

func (s *MatchStorage) Create(ctx context.Context, match *entity.Match) (*entity.Match, error) {
	err := s.db.WithContext(ctx).Create(&match).Error
	return match, err
}

func (s *MatchStorage) Get(ctx context.Context, id string) (*entity.Match, error) {
	var match entity.Match
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&match).Error
	return &match, err
}

func (s *MatchStorage) Update(ctx context.Context, match *entity.Match) (*entity.Match, error) {
	err := s.db.WithContext(ctx).Save(&match).Error
	return match, err
}

func (s *MatchStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&entity.Match{}, "id = ?", id).Error
}

// GetWithPagination is a function that gets a list of matches from the database with pagination.
func (s *MatchStorage) GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.Match, error) {
	var matches []entity.Match
	err := s.db.WithContext(ctx).Order(order).Offset(offset).Limit(limit).Find(&matches).Error
	return matches, err
}
