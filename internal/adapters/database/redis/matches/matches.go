package matches

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Get(ctx context.Context, matchID string) (*entity.Match, error) {
	matchBytes, err := s.redis.Get(ctx, matchID).Result()
	if err != nil {
		return nil, nil
	}

	var match entity.Match
	if err = json.Unmarshal([]byte(matchBytes), &match); err != nil {
		return nil, err
	}

	return &match, nil
}

func (s *Storage) Set(ctx context.Context, match *entity.Match, expiration time.Duration) {
	matchBytes, _ := json.Marshal(match)
	s.redis.Set(ctx, match.ID, matchBytes, expiration)
}

func (s *Storage) Clear(ctx context.Context, matchID string) {
	s.redis.Del(ctx, matchID)
}
