package dispatch

import (
	"context"
	"time"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
)

type processedStore interface {
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
	Clear(ctx context.Context, eventID string)
}

// Handler is the shape all dispatchers share.
type Handler func(ctx context.Context, event entity.Event) error

// WithIdempotency suppresses duplicate deliveries of the same event id inside
// the store's TTL window. Delivery is at-least-once, so a crash between side
// effect and ack redelivers; with this wrapper the second delivery is acked
// without repeating the side effect. A store error fails open: the event is
// processed, duplicates being the lesser evil over dropped notifications.
func WithIdempotency(store processedStore, ttl time.Duration, logger *types.Logger, next Handler) Handler {
	return func(ctx context.Context, event entity.Event) error {
		first, err := store.MarkProcessed(ctx, event.EventID, ttl)
		if err != nil {
			logger.Warnf("idempotency check for %s failed, processing anyway: %v", event.EventID, err)
			return next(ctx, event)
		}
		if !first {
			logger.Infof("skipping duplicate delivery of %s", event.EventID)
			return nil
		}

		if errNext := next(ctx, event); errNext != nil {
			// Release the claim so a redelivery can retry when the ack
			// policy leaves the message pending.
			store.Clear(ctx, event.EventID)
			return errNext
		}
		return nil
	}
}
