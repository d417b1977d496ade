package dispatch

import (
	"context"
	"testing"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationWriter struct {
	created []*entity.Notification
}

func (f *fakeNotificationWriter) Create(_ context.Context, notification *entity.Notification) error {
	f.created = append(f.created, notification)
	return nil
}

func TestInAppDispatcherJoinRequestGoesToCreator(t *testing.T) {
	writer := &fakeNotificationWriter{}
	d := NewInAppDispatcher(writer, newTestLogger())

	event := entity.NewEvent(entity.EventJoinRequestReceived, "m1", map[string]string{
		"creatorId":   "creator",
		"requesterId": "requester",
	})

	require.NoError(t, d.Handle(context.Background(), event))
	require.Len(t, writer.created, 1)
	assert.Equal(t, "creator", writer.created[0].UserID)
	require.NotNil(t, writer.created[0].MatchID)
	assert.Equal(t, "m1", *writer.created[0].MatchID)
	assert.False(t, writer.created[0].Read)
}

func TestInAppDispatcherAcceptanceGoesToRequester(t *testing.T) {
	writer := &fakeNotificationWriter{}
	d := NewInAppDispatcher(writer, newTestLogger())

	event := entity.NewEvent(entity.EventJoinRequestAccepted, "m1", map[string]string{
		"creatorId":   "creator",
		"requesterId": "requester",
	})

	require.NoError(t, d.Handle(context.Background(), event))
	require.Len(t, writer.created, 1)
	assert.Equal(t, "requester", writer.created[0].UserID)
}

func TestInAppDispatcherStatusChangeMessage(t *testing.T) {
	writer := &fakeNotificationWriter{}
	d := NewInAppDispatcher(writer, newTestLogger())

	event := entity.NewEvent(entity.EventMatchStatusChanged, "m1", map[string]string{
		"creatorId": "creator",
		"from":      string(entity.MatchStatusOpen),
		"to":        string(entity.MatchStatusFull),
	})

	require.NoError(t, d.Handle(context.Background(), event))
	require.Len(t, writer.created, 1)
	assert.Contains(t, writer.created[0].Message, string(entity.MatchStatusOpen))
	assert.Contains(t, writer.created[0].Message, string(entity.MatchStatusFull))
}

func TestInAppDispatcherIgnoresUnmappedTypes(t *testing.T) {
	writer := &fakeNotificationWriter{}
	d := NewInAppDispatcher(writer, newTestLogger())

	event := entity.NewEvent(entity.EventMatchCreated, "m1", map[string]string{"creatorId": "creator"})

	require.NoError(t, d.Handle(context.Background(), event))
	assert.Empty(t, writer.created)
}

func TestInAppDispatcherDropsEventWithoutRecipient(t *testing.T) {
	writer := &fakeNotificationWriter{}
	d := NewInAppDispatcher(writer, newTestLogger())

	event := entity.NewEvent(entity.EventJoinRequestReceived, "m1", nil)

	require.NoError(t, d.Handle(context.Background(), event))
	assert.Empty(t, writer.created)
}
