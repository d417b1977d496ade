// Package dispatch holds the consumer-side handlers that turn bus events into
// outbound side effects. Handlers report failure through their error return;
// acknowledgment policy lives in the bus subscription, not here.
package dispatch

import (
	"context"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
)

type mailClient interface {
	SendVerificationEmail(to string, code string) error
	SendPasswordResetEmail(to string, code string) error
	SendMatchVerificationEmail(to string, matchTitle string, code string) error
	SendMatchReminderEmail(to string, matchTitle string, startsAt string) error
}

type preferenceGate interface {
	IsChannelEnabled(ctx context.Context, userID string, channel entity.Channel, category entity.Category) bool
}

// EmailDispatcher resolves the template for an email-triggering event and
// sends it through the mail collaborator.
type EmailDispatcher struct {
	mail   mailClient
	gate   preferenceGate
	logger *types.Logger
}

func NewEmailDispatcher(mail mailClient, gate preferenceGate, logger *types.Logger) *EmailDispatcher {
	return &EmailDispatcher{
		mail:   mail,
		gate:   gate,
		logger: logger,
	}
}

// Handle sends the email matching the event's type. An event type with no
// template logs a warning and sends nothing; that is not an error.
func (d *EmailDispatcher) Handle(ctx context.Context, event entity.Event) error {
	to := event.Data["email"]
	if to == "" {
		d.logger.Warnf("event %s (%s) carries no recipient email", event.EventID, event.Type)
		return nil
	}

	var category entity.Category
	var send func() error

	switch event.Type {
	case entity.EventUserRegistered:
		category = entity.CategoryVerification
		send = func() error { return d.mail.SendVerificationEmail(to, event.Data["code"]) }
	case entity.EventPasswordResetRequested:
		category = entity.CategoryPasswordReset
		send = func() error { return d.mail.SendPasswordResetEmail(to, event.Data["code"]) }
	case entity.EventMatchVerificationCode:
		category = entity.CategoryMatchUpdate
		send = func() error {
			return d.mail.SendMatchVerificationEmail(to, event.Data["matchTitle"], event.Data["code"])
		}
	case entity.EventMatchReminder:
		category = entity.CategoryMatchReminder
		send = func() error {
			return d.mail.SendMatchReminderEmail(to, event.Data["matchTitle"], event.Data["startsAt"])
		}
	default:
		d.logger.Warnf("no email template for event type %s (event %s)", event.Type, event.EventID)
		return nil
	}

	if !d.gate.IsChannelEnabled(ctx, event.SubjectID, entity.ChannelEmail, category) {
		d.logger.Debugf("email %s to %s suppressed by preference", event.Type, event.SubjectID)
		return nil
	}

	if err := send(); err != nil {
		return err
	}

	d.logger.Infof("sent %s email for event %s", event.Type, event.EventID)
	return nil
}
