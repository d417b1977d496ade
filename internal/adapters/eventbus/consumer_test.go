package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedMessage(t *testing.T, event entity.Event) redis.XMessage {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return redis.XMessage{
		ID: "1-0",
		Values: map[string]interface{}{
			"key":     event.SubjectID,
			"payload": string(payload),
		},
	}
}

func TestHandleMessageAcksOnSuccess(t *testing.T) {
	bus := newTestBus(3)
	msg := encodedMessage(t, entity.NewEvent(entity.EventPushRequested, "u1", nil))
	opts := SubscribeOptions{}.withDefaults()

	handled := false
	ack := bus.handleMessage(context.Background(), "push-notifications:0", msg, func(context.Context, entity.Event) error {
		handled = true
		return nil
	}, opts)

	assert.True(t, handled)
	assert.True(t, ack)
}

func TestHandleMessageFailureStillAckedByDefault(t *testing.T) {
	bus := newTestBus(3)
	msg := encodedMessage(t, entity.NewEvent(entity.EventPushRequested, "u1", nil))
	opts := SubscribeOptions{AckOnFailure: true}.withDefaults()

	ack := bus.handleMessage(context.Background(), "push-notifications:0", msg, func(context.Context, entity.Event) error {
		return errors.New("smtp down")
	}, opts)

	// The default policy trades silent loss for forward progress: a failed
	// handler does not leave the message pending.
	assert.True(t, ack)
}

func TestHandleMessageFailureLeftPendingWhenConfigured(t *testing.T) {
	bus := newTestBus(3)
	msg := encodedMessage(t, entity.NewEvent(entity.EventPushRequested, "u1", nil))
	opts := SubscribeOptions{AckOnFailure: false}.withDefaults()

	ack := bus.handleMessage(context.Background(), "push-notifications:0", msg, func(context.Context, entity.Event) error {
		return errors.New("smtp down")
	}, opts)

	// With ack-on-failure off the message stays pending, so a restarted
	// consumer re-claims and retries it.
	assert.False(t, ack)
}

func TestHandleMessageAcksUndecodablePayload(t *testing.T) {
	bus := newTestBus(3)
	msg := redis.XMessage{
		ID:     "1-0",
		Values: map[string]interface{}{"payload": "{not json"},
	}
	opts := SubscribeOptions{AckOnFailure: false}.withDefaults()

	handled := false
	ack := bus.handleMessage(context.Background(), "push-notifications:0", msg, func(context.Context, entity.Event) error {
		handled = true
		return nil
	}, opts)

	// Garbage can never succeed; it is acked even under the strict policy so
	// it cannot wedge the partition.
	assert.False(t, handled)
	assert.True(t, ack)
}

func TestSubscribeOptionsDefaults(t *testing.T) {
	opts := SubscribeOptions{}.withDefaults()
	assert.Equal(t, defaultDispatchTimeout, opts.DispatchTimeout)
	assert.Equal(t, defaultBlockTimeout, opts.BlockTimeout)
}
