package users

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

// Get returns the cached user, or a miss (nil, nil) when the key is absent or
// the payload does not decode.
func (s *Storage) Get(ctx context.Context, userID string) (*entity.User, error) {
	userBytes, err := s.redis.Get(ctx, userID).Result()
	if err != nil {
		return nil, nil
	}

	var user entity.User
	if err = json.Unmarshal([]byte(userBytes), &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Storage) Set(ctx context.Context, user *entity.User, expiration time.Duration) {
	userBytes, _ := json.Marshal(user)
	s.redis.Set(ctx, user.ID, userBytes, expiration)
}

func (s *Storage) Clear(ctx context.Context, userID string) {
	s.redis.Del(ctx, userID)
}
