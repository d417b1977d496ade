package dispatch

import (
	"context"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/expo"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
)

type pushTokenReader interface {
	GetByUser(ctx context.Context, userID string) ([]entity.PushToken, error)
}

type pushSender interface {
	Send(ctx context.Context, msg expo.Message) error
}

// PushDispatcher fans a push event out to every device token of the subject.
type PushDispatcher struct {
	tokens pushTokenReader
	sender pushSender
	gate   preferenceGate
	logger *types.Logger
}

func NewPushDispatcher(tokens pushTokenReader, sender pushSender, gate preferenceGate, logger *types.Logger) *PushDispatcher {
	return &PushDispatcher{
		tokens: tokens,
		sender: sender,
		gate:   gate,
		logger: logger,
	}
}

// Handle delivers to each registered device independently; one bad token does
// not stop delivery to the rest. A user with no tokens is a quiet no-op.
func (d *PushDispatcher) Handle(ctx context.Context, event entity.Event) error {
	category := entity.Category(event.Data["category"])
	if !d.gate.IsChannelEnabled(ctx, event.SubjectID, entity.ChannelPush, category) {
		d.logger.Debugf("push %s to %s suppressed by preference", category, event.SubjectID)
		return nil
	}

	tokens, err := d.tokens.GetByUser(ctx, event.SubjectID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		d.logger.Infof("no push tokens registered for %s, skipping event %s", event.SubjectID, event.EventID)
		return nil
	}

	var errs []error
	for _, token := range tokens {
		errSend := d.sender.Send(ctx, expo.Message{
			To:    token.ExpoToken,
			Title: event.Data["title"],
			Body:  event.Data["body"],
			Data:  event.Data,
		})
		if errSend != nil {
			d.logger.Errorf("push to token %s of %s failed: %v", token.ExpoToken, event.SubjectID, errSend)
			errs = append(errs, errSend)
		}
	}

	if len(errs) == len(tokens) && len(errs) > 0 {
		return errs[0]
	}
	return nil
}
