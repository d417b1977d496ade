package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakeMailClient struct {
	verificationCalls int
	resetCalls        int
	matchCodeCalls    int
	reminderCalls     int
	lastTo            string
	lastCode          string
	err               error
}

func (f *fakeMailClient) SendVerificationEmail(to, code string) error {
	f.verificationCalls++
	f.lastTo, f.lastCode = to, code
	return f.err
}

func (f *fakeMailClient) SendPasswordResetEmail(to, code string) error {
	f.resetCalls++
	f.lastTo, f.lastCode = to, code
	return f.err
}

func (f *fakeMailClient) SendMatchVerificationEmail(to, _, code string) error {
	f.matchCodeCalls++
	f.lastTo, f.lastCode = to, code
	return f.err
}

func (f *fakeMailClient) SendMatchReminderEmail(to, _, _ string) error {
	f.reminderCalls++
	f.lastTo = to
	return f.err
}

type fakeGate struct {
	enabled bool
}

func (f *fakeGate) IsChannelEnabled(context.Context, string, entity.Channel, entity.Category) bool {
	return f.enabled
}

func TestEmailDispatcherSendsVerification(t *testing.T) {
	mail := &fakeMailClient{}
	d := NewEmailDispatcher(mail, &fakeGate{enabled: true}, newTestLogger())

	event := entity.NewEvent(entity.EventUserRegistered, "u1", map[string]string{
		"email": "a@b.com",
		"code":  "123456",
	})

	require.NoError(t, d.Handle(context.Background(), event))
	assert.Equal(t, 1, mail.verificationCalls)
	assert.Equal(t, "a@b.com", mail.lastTo)
	assert.Equal(t, "123456", mail.lastCode)
}

func TestEmailDispatcherUnknownTypeSendsNothing(t *testing.T) {
	mail := &fakeMailClient{}
	d := NewEmailDispatcher(mail, &fakeGate{enabled: true}, newTestLogger())

	event := entity.NewEvent(entity.EventMatchSaved, "u1", map[string]string{"email": "a@b.com"})

	// No template for the type: warn and send nothing, not an error.
	require.NoError(t, d.Handle(context.Background(), event))
	assert.Zero(t, mail.verificationCalls+mail.resetCalls+mail.matchCodeCalls+mail.reminderCalls)
}

func TestEmailDispatcherMissingRecipient(t *testing.T) {
	mail := &fakeMailClient{}
	d := NewEmailDispatcher(mail, &fakeGate{enabled: true}, newTestLogger())

	event := entity.NewEvent(entity.EventUserRegistered, "u1", nil)

	require.NoError(t, d.Handle(context.Background(), event))
	assert.Zero(t, mail.verificationCalls)
}

func TestEmailDispatcherSuppressedByPreference(t *testing.T) {
	mail := &fakeMailClient{}
	d := NewEmailDispatcher(mail, &fakeGate{enabled: false}, newTestLogger())

	event := entity.NewEvent(entity.EventMatchReminder, "u1", map[string]string{
		"email":      "a@b.com",
		"matchTitle": "Sunday five-a-side",
		"startsAt":   "2025-06-01T10:00:00Z",
	})

	require.NoError(t, d.Handle(context.Background(), event))
	assert.Zero(t, mail.reminderCalls)
}

func TestEmailDispatcherPropagatesSendFailure(t *testing.T) {
	mail := &fakeMailClient{err: errors.New("smtp down")}
	d := NewEmailDispatcher(mail, &fakeGate{enabled: true}, newTestLogger())

	event := entity.NewEvent(entity.EventPasswordResetRequested, "u1", map[string]string{
		"email": "a@b.com",
		"code":  "654321",
	})

	// The dispatcher reports the failure; whether the message is still
	// acknowledged is the subscription's policy, not the handler's.
	assert.Error(t, d.Handle(context.Background(), event))
	assert.Equal(t, 1, mail.resetCalls)
}
