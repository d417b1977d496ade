package codes

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage keeps short-lived verification and password-reset codes keyed by
// subject id.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Get(ctx context.Context, subjectID string) (string, error) {
	return s.redis.Get(ctx, subjectID).Result()
}

func (s *Storage) Set(ctx context.Context, subjectID string, code string, expiration time.Duration) {
	s.redis.Set(ctx, subjectID, code, expiration)
}

func (s *Storage) Clear(ctx context.Context, subjectID string) {
	s.redis.Del(ctx, subjectID)
}
