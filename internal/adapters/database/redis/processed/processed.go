package processed

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage records event ids that have already been dispatched. Delivery is
// at-least-once, so a consumer may see the same event again after a crash
// between side effect and ack; SETNX with a TTL gives a cheap dedup window.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

// MarkProcessed returns true when the event id was not seen before and is now
// claimed by this consumer. A false return means a duplicate delivery.
func (s *Storage) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	return s.redis.SetNX(ctx, eventID, 1, ttl).Result()
}

func (s *Storage) Clear(ctx context.Context, eventID string) {
	s.redis.Del(ctx, eventID)
}
