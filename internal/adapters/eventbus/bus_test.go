package eventbus

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBus(partitions int) *Bus {
	logger := &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
	return New(nil, Options{Partitions: partitions}, logger)
}

func TestPartitionForIsStablePerKey(t *testing.T) {
	bus := newTestBus(3)

	for _, key := range []string{"user-1", "match-42", "", "a-rather-long-routing-key"} {
		first := bus.partitionFor(key)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, bus.partitionFor(key), "key %q must always map to the same partition", key)
		}
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, 3)
	}
}

func TestPartitionForSpreadsKeys(t *testing.T) {
	bus := newTestBus(4)

	seen := make(map[int]bool)
	for i := 0; i < 100; i++ {
		seen[bus.partitionFor(fmt.Sprintf("user-%d", i))] = true
	}
	assert.Len(t, seen, 4, "100 distinct keys should reach every partition")
}

func TestStreamName(t *testing.T) {
	assert.Equal(t, "match-events:0", streamName(TopicMatchEvents, 0))
	assert.Equal(t, "push-notifications:2", streamName(TopicPushNotifications, 2))
}

func TestDecodeEventRoundTrip(t *testing.T) {
	event := entity.NewEvent(entity.EventMatchCreated, "m1", map[string]string{"creatorId": "u1"})
	event = event.WithCorrelation("corr-1")

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	decoded, err := decodeEvent(map[string]interface{}{
		"key":     "m1",
		"payload": string(payload),
	})
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, entity.EventMatchCreated, decoded.Type)
	assert.Equal(t, "m1", decoded.SubjectID)
	assert.Equal(t, "corr-1", decoded.CorrelationID)
	assert.Equal(t, "u1", decoded.Data["creatorId"])
	assert.True(t, event.Timestamp.Equal(decoded.Timestamp))
}

func TestDecodeEventRejectsBadMessages(t *testing.T) {
	_, err := decodeEvent(map[string]interface{}{"key": "m1"})
	assert.Error(t, err)

	_, err = decodeEvent(map[string]interface{}{"payload": "{not json"})
	assert.Error(t, err)
}
