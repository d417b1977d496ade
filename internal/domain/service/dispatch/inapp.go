package dispatch

import (
	"context"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
)

type notificationWriter interface {
	Create(ctx context.Context, notification *entity.Notification) error
}

// InAppDispatcher persists in-app notification records for events a user
// should see in their feed. The preference gate does not apply here: it
// governs outbound channels only, the in-app record is always written.
type InAppDispatcher struct {
	notifications notificationWriter
	logger        *types.Logger
}

func NewInAppDispatcher(notifications notificationWriter, logger *types.Logger) *InAppDispatcher {
	return &InAppDispatcher{
		notifications: notifications,
		logger:        logger,
	}
}

func (d *InAppDispatcher) Handle(ctx context.Context, event entity.Event) error {
	notification, ok := d.build(event)
	if !ok {
		d.logger.Debugf("no in-app record for event type %s", event.Type)
		return nil
	}

	if err := d.notifications.Create(ctx, notification); err != nil {
		return err
	}
	d.logger.Infof("stored in-app notification for %s (event %s)", notification.UserID, event.EventID)
	return nil
}

// build maps an event to the user who should see it. Events that concern a
// match carry the match id as subject; the recipient comes from the payload.
func (d *InAppDispatcher) build(event entity.Event) (*entity.Notification, bool) {
	matchID := event.SubjectID
	creatorID := event.Data["creatorId"]

	var notification entity.Notification
	switch event.Type {
	case entity.EventJoinRequestReceived:
		notification = entity.Notification{
			UserID:  creatorID,
			Title:   "New join request",
			Message: "A player asked to join your match",
		}
	case entity.EventJoinRequestAccepted:
		notification = entity.Notification{
			UserID:  event.Data["requesterId"],
			Title:   "Request accepted",
			Message: "Your join request was accepted",
		}
	case entity.EventJoinRequestRejected:
		notification = entity.Notification{
			UserID:  event.Data["requesterId"],
			Title:   "Request declined",
			Message: "Your join request was declined",
		}
	case entity.EventMatchStatusChanged:
		notification = entity.Notification{
			UserID:  creatorID,
			Title:   "Match status changed",
			Message: "Your match moved from " + event.Data["from"] + " to " + event.Data["to"],
		}
	case entity.EventPlayerLeft:
		notification = entity.Notification{
			UserID:  creatorID,
			Title:   "Player left",
			Message: "A player left your match",
		}
	default:
		return nil, false
	}

	if notification.UserID == "" {
		return nil, false
	}

	notification.Type = event.Type
	notification.MatchID = &matchID
	if creatorID != "" {
		notification.MatchCreatorID = &creatorID
	}
	notification.CreatedAt = event.Timestamp
	return &notification, true
}
