package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventUserRegistered         EventType = "USER_REGISTERED"
	EventUserLoggedIn           EventType = "USER_LOGGED_IN"
	EventUserLoggedOut          EventType = "USER_LOGGED_OUT"
	EventUserDeleted            EventType = "USER_DELETED"
	EventEmailVerified          EventType = "EMAIL_VERIFIED"
	EventPasswordResetRequested EventType = "PASSWORD_RESET_REQUESTED"
	EventPasswordResetCompleted EventType = "PASSWORD_RESET_COMPLETED"
	EventMatchCreated           EventType = "MATCH_CREATED"
	EventMatchUpdated           EventType = "MATCH_UPDATED"
	EventMatchDeleted           EventType = "MATCH_DELETED"
	EventMatchStatusChanged     EventType = "MATCH_STATUS_CHANGED"
	EventPlayerJoined           EventType = "PLAYER_JOINED"
	EventPlayerLeft             EventType = "PLAYER_LEFT"
	EventJoinRequestReceived    EventType = "JOIN_REQUEST_RECEIVED"
	EventJoinRequestAccepted    EventType = "JOIN_REQUEST_ACCEPTED"
	EventJoinRequestRejected    EventType = "JOIN_REQUEST_REJECTED"
	EventMatchSaved             EventType = "MATCH_SAVED"
	EventMatchUnsaved           EventType = "MATCH_UNSAVED"

	// Outbound-channel kinds: carried on the email and push topics, decoded
	// by the same codec as the domain kinds above.
	EventMatchVerificationCode EventType = "MATCH_VERIFICATION_CODE"
	EventMatchReminder         EventType = "MATCH_REMINDER"
	EventPushRequested         EventType = "PUSH_NOTIFICATION"
)

// Event is the single shape carried on every topic. Events are immutable once
// published: consumers must never mutate and republish under the same EventID.
type Event struct {
	EventID       string            `json:"eventId"`
	Type          EventType         `json:"type"`
	SubjectID     string            `json:"subjectId"`
	Data          map[string]string `json:"data,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
	CorrelationID string            `json:"correlationId,omitempty"`
}

// NewEvent builds an event with a fresh id and timestamp. SubjectID is the
// partition key; when the event has no natural owner it falls back to the
// event id so the bus still gets a non-empty key.
func NewEvent(eventType EventType, subjectID string, data map[string]string) Event {
	id := uuid.New().String()
	if subjectID == "" {
		subjectID = id
	}
	return Event{
		EventID:   id,
		Type:      eventType,
		SubjectID: subjectID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// WithCorrelation returns a copy carrying the originating request's correlation id.
func (e Event) WithCorrelation(correlationID string) Event {
	e.CorrelationID = correlationID
	return e
}
