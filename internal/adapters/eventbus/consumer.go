package eventbus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Handler processes one event. A nil return means the side effect went
// through; a non-nil return is a dispatch failure. Whether a failed message
// is acknowledged anyway is the subscription's call, not the handler's.
type Handler func(ctx context.Context, event entity.Event) error

// SubscribeOptions tune one consumer group subscription.
type SubscribeOptions struct {
	// AckOnFailure acknowledges messages whose handler returned an error,
	// trading silent loss on transient failures for guaranteed forward
	// progress. This mirrors the historical behavior of the pipeline; set it
	// to false to leave failed messages pending for redelivery on restart.
	AckOnFailure bool

	// DispatchTimeout bounds a single handler invocation. A hung outbound
	// collaborator used to stall the worker forever; the timeout caps that.
	DispatchTimeout time.Duration

	// BlockTimeout is how long a worker blocks on an empty stream before
	// re-checking for shutdown.
	BlockTimeout time.Duration
}

const (
	defaultDispatchTimeout = 10 * time.Second
	defaultBlockTimeout    = 5 * time.Second
)

func (o SubscribeOptions) withDefaults() SubscribeOptions {
	if o.DispatchTimeout <= 0 {
		o.DispatchTimeout = defaultDispatchTimeout
	}
	if o.BlockTimeout <= 0 {
		o.BlockTimeout = defaultBlockTimeout
	}
	return o
}

// Subscribe starts one worker goroutine per partition of the topic for the
// given consumer group. Per-key ordering holds because a partition is only
// ever read by one worker of the group at a time. Workers stop when ctx is
// cancelled.
func (b *Bus) Subscribe(ctx context.Context, topic, group string, handler Handler, opts SubscribeOptions) error {
	opts = opts.withDefaults()

	for p := 0; p < b.partitions; p++ {
		stream := streamName(topic, p)
		err := b.redis.XGroupCreateMkStream(ctx, stream, group, "0").Err()
		if err != nil && !isBusyGroup(err) {
			return fmt.Errorf("failed to create group %s on %s: %w", group, stream, err)
		}

		consumer := fmt.Sprintf("%s-%s", group, uuid.New().String()[:8])
		go b.consumePartition(ctx, stream, group, consumer, handler, opts)
	}

	b.logger.Infof("subscribed group %s to %s (%d partitions)", group, topic, b.partitions)
	return nil
}

func (b *Bus) consumePartition(ctx context.Context, stream, group, consumer string, handler Handler, opts SubscribeOptions) {
	// Claim whatever an earlier incarnation left unacknowledged before
	// reading new entries. This is where at-least-once redelivery happens.
	b.claimPending(ctx, stream, group, consumer, handler, opts)

	for {
		if ctx.Err() != nil {
			return
		}

		res, err := b.redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    group,
			Consumer: consumer,
			Streams:  []string{stream, ">"},
			Count:    10,
			Block:    opts.BlockTimeout,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			b.logger.Errorf("read on %s failed: %v", stream, err)
			time.Sleep(time.Second)
			continue
		}

		for _, streamRes := range res {
			for _, msg := range streamRes.Messages {
				b.dispatch(ctx, stream, group, msg, handler, opts)
			}
		}
	}
}

// claimPending takes over entries that were delivered but never acknowledged,
// both this group's dead consumers and crashed incarnations of this one.
func (b *Bus) claimPending(ctx context.Context, stream, group, consumer string, handler Handler, opts SubscribeOptions) {
	start := "0-0"
	for {
		messages, next, err := b.redis.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   stream,
			Group:    group,
			Consumer: consumer,
			MinIdle:  opts.DispatchTimeout,
			Start:    start,
			Count:    50,
		}).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) {
				b.logger.Errorf("claim on %s failed: %v", stream, err)
			}
			return
		}

		for _, msg := range messages {
			b.dispatch(ctx, stream, group, msg, handler, opts)
		}

		if next == "0-0" || len(messages) == 0 {
			return
		}
		start = next
	}
}

func (b *Bus) dispatch(ctx context.Context, stream, group string, msg redis.XMessage, handler Handler, opts SubscribeOptions) {
	if b.handleMessage(ctx, stream, msg, handler, opts) {
		b.ack(ctx, stream, group, msg.ID)
	}
}

// handleMessage runs the handler under the dispatch timeout and reports
// whether the message should be acknowledged. Every terminal outcome
// acknowledges unless AckOnFailure is off and the handler failed.
func (b *Bus) handleMessage(ctx context.Context, stream string, msg redis.XMessage, handler Handler, opts SubscribeOptions) bool {
	event, err := decodeEvent(msg.Values)
	if err != nil {
		// A message that cannot be decoded can never succeed; ack it so it
		// does not wedge the partition.
		b.logger.Warnf("dropping undecodable message %s on %s: %v", msg.ID, stream, err)
		return true
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, opts.DispatchTimeout)
	handlerErr := handler(dispatchCtx, event)
	cancel()

	if handlerErr != nil {
		b.logger.Errorf("dispatch of %s (%s) on %s failed: %v", event.EventID, event.Type, stream, handlerErr)
		return opts.AckOnFailure
	}
	return true
}

func (b *Bus) ack(ctx context.Context, stream, group, id string) {
	if err := b.redis.XAck(ctx, stream, group, id).Err(); err != nil {
		b.logger.Errorf("ack of %s on %s failed: %v", id, stream, err)
	}
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}
