package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
	"github.com/redis/go-redis/v9"
)

// Bus is a partitioned, at-least-once publish/subscribe channel on Redis
// Streams. A topic is split over a fixed number of streams ("topic:0" ..
// "topic:N-1"); events with the same key always land on the same stream, so
// per-key publish order survives all the way to the consumer.
type Bus struct {
	redis      *redis.Client
	partitions int
	logger     *types.Logger
}

type Options struct {
	// Partitions is the stream count per topic. Changing it on a live
	// deployment re-shuffles key placement, so it is fixed per environment.
	Partitions int
}

func New(client *redis.Client, opts Options, logger *types.Logger) *Bus {
	partitions := opts.Partitions
	if partitions <= 0 {
		partitions = 3
	}
	return &Bus{
		redis:      client,
		partitions: partitions,
		logger:     logger,
	}
}

// Publish appends the event to the partition owned by its key. The append is
// synchronous on the Redis side but callers treat it as fire-and-forget:
// business writes are never rolled back on publish failure.
func (b *Bus) Publish(ctx context.Context, topic string, key string, event entity.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.EventID, err)
	}

	stream := streamName(topic, b.partitionFor(key))
	err = b.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"key":     key,
			"payload": payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish %s to %s: %w", event.EventID, stream, err)
	}

	b.logger.Debugf("published %s (%s) to %s", event.EventID, event.Type, stream)
	return nil
}

func (b *Bus) partitionFor(key string) int {
	return int(crc32.ChecksumIEEE([]byte(key)) % uint32(b.partitions))
}

func streamName(topic string, partition int) string {
	return fmt.Sprintf("%s:%d", topic, partition)
}

func decodeEvent(values map[string]interface{}) (entity.Event, error) {
	raw, ok := values["payload"].(string)
	if !ok {
		return entity.Event{}, fmt.Errorf("message has no payload field")
	}

	var event entity.Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return entity.Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	return event, nil
}
