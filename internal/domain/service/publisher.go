package service

import (
	"context"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/eventbus"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
)

type eventBus interface {
	Publish(ctx context.Context, topic string, key string, event entity.Event) error
}

// Publisher is the one place domain code hands events to the bus. Every emit
// is fire-and-forget: a publish failure is logged and swallowed, it never
// blocks or rolls back the business write that triggered it.
type Publisher struct {
	bus    eventBus
	logger *types.Logger
}

func NewPublisher(bus eventBus, logger *types.Logger) *Publisher {
	return &Publisher{
		bus:    bus,
		logger: logger,
	}
}

func (p *Publisher) emit(ctx context.Context, topic string, event entity.Event) {
	if err := p.bus.Publish(ctx, topic, event.SubjectID, event); err != nil {
		p.logger.Errorf("failed to publish %s (%s): %v", event.EventID, event.Type, err)
	}
}

// CorrelationIDFromContext reads the correlation id threaded through from the
// originating request, if any.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// WithCorrelationID stores the request's correlation id for downstream emits.
type correlationKey struct{}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func (p *Publisher) newEvent(ctx context.Context, eventType entity.EventType, subjectID string, data map[string]string) entity.Event {
	return entity.NewEvent(eventType, subjectID, data).WithCorrelation(CorrelationIDFromContext(ctx))
}

func (p *Publisher) UserRegistered(ctx context.Context, userID, email string) {
	p.emit(ctx, eventbus.TopicUserEvents, p.newEvent(ctx, entity.EventUserRegistered, userID, map[string]string{"email": email}))
}

func (p *Publisher) UserLoggedIn(ctx context.Context, userID string) {
	p.emit(ctx, eventbus.TopicAuthEvents, p.newEvent(ctx, entity.EventUserLoggedIn, userID, nil))
}

func (p *Publisher) UserLoggedOut(ctx context.Context, userID string) {
	p.emit(ctx, eventbus.TopicAuthEvents, p.newEvent(ctx, entity.EventUserLoggedOut, userID, nil))
}

func (p *Publisher) UserDeleted(ctx context.Context, userID string) {
	p.emit(ctx, eventbus.TopicUserEvents, p.newEvent(ctx, entity.EventUserDeleted, userID, nil))
}

func (p *Publisher) EmailVerified(ctx context.Context, userID, email string) {
	p.emit(ctx, eventbus.TopicUserEvents, p.newEvent(ctx, entity.EventEmailVerified, userID, map[string]string{"email": email}))
}

// EmailVerificationRequested carries the confirmation code to the email
// dispatcher. Registration publishes it alongside UserRegistered.
func (p *Publisher) EmailVerificationRequested(ctx context.Context, userID, email, code string) {
	p.emit(ctx, eventbus.TopicEmailVerification, p.newEvent(ctx, entity.EventUserRegistered, userID, map[string]string{
		"email": email,
		"code":  code,
	}))
}

func (p *Publisher) PasswordResetRequested(ctx context.Context, userID, email, code string) {
	p.emit(ctx, eventbus.TopicPasswordReset, p.newEvent(ctx, entity.EventPasswordResetRequested, userID, map[string]string{
		"email": email,
		"code":  code,
	}))
}

func (p *Publisher) PasswordResetCompleted(ctx context.Context, userID string) {
	p.emit(ctx, eventbus.TopicPasswordReset, p.newEvent(ctx, entity.EventPasswordResetCompleted, userID, nil))
}

func (p *Publisher) MatchCreated(ctx context.Context, match *entity.Match) {
	p.emit(ctx, eventbus.TopicMatchEvents, p.newEvent(ctx, entity.EventMatchCreated, match.ID, map[string]string{
		"creatorId": match.CreatorID,
		"title":     match.Title,
	}))
}

func (p *Publisher) MatchUpdated(ctx context.Context, match *entity.Match) {
	p.emit(ctx, eventbus.TopicMatchEvents, p.newEvent(ctx, entity.EventMatchUpdated, match.ID, map[string]string{
		"creatorId": match.CreatorID,
		"title":     match.Title,
	}))
}

func (p *Publisher) MatchDeleted(ctx context.Context, matchID, creatorID string) {
	p.emit(ctx, eventbus.TopicMatchEvents, p.newEvent(ctx, entity.EventMatchDeleted, matchID, map[string]string{
		"creatorId": creatorID,
	}))
}

func (p *Publisher) MatchStatusChanged(ctx context.Context, match *entity.Match, previous entity.MatchStatus) {
	p.emit(ctx, eventbus.TopicMatchEvents, p.newEvent(ctx, entity.EventMatchStatusChanged, match.ID, map[string]string{
		"creatorId": match.CreatorID,
		"title":     match.Title,
		"from":      string(previous),
		"to":        string(match.Status),
	}))
}

func (p *Publisher) PlayerJoined(ctx context.Context, matchID, userID string) {
	p.emit(ctx, eventbus.TopicMatchEvents, p.newEvent(ctx, entity.EventPlayerJoined, matchID, map[string]string{"userId": userID}))
}

func (p *Publisher) PlayerLeft(ctx context.Context, matchID, userID string) {
	p.emit(ctx, eventbus.TopicMatchEvents, p.newEvent(ctx, entity.EventPlayerLeft, matchID, map[string]string{"userId": userID}))
}

func (p *Publisher) JoinRequestReceived(ctx context.Context, matchID, creatorID, requesterID string) {
	p.emit(ctx, eventbus.TopicMatchEvents, p.newEvent(ctx, entity.EventJoinRequestReceived, matchID, map[string]string{
		"creatorId":   creatorID,
		"requesterId": requesterID,
	}))
}

func (p *Publisher) JoinRequestAccepted(ctx context.Context, matchID, requesterID string) {
	p.emit(ctx, eventbus.TopicMatchEvents, p.newEvent(ctx, entity.EventJoinRequestAccepted, matchID, map[string]string{
		"requesterId": requesterID,
	}))
}

func (p *Publisher) JoinRequestRejected(ctx context.Context, matchID, requesterID string) {
	p.emit(ctx, eventbus.TopicMatchEvents, p.newEvent(ctx, entity.EventJoinRequestRejected, matchID, map[string]string{
		"requesterId": requesterID,
	}))
}

func (p *Publisher) MatchSaved(ctx context.Context, matchID, userID string) {
	p.emit(ctx, eventbus.TopicMatchEvents, p.newEvent(ctx, entity.EventMatchSaved, matchID, map[string]string{"userId": userID}))
}

func (p *Publisher) MatchUnsaved(ctx context.Context, matchID, userID string) {
	p.emit(ctx, eventbus.TopicMatchEvents, p.newEvent(ctx, entity.EventMatchUnsaved, matchID, map[string]string{"userId": userID}))
}

// PushRequested addresses one user; the push dispatcher resolves their device
// tokens. Category feeds the preference gate.
func (p *Publisher) PushRequested(ctx context.Context, userID string, category entity.Category, title, body string, data map[string]string) {
	payload := map[string]string{
		"category": string(category),
		"title":    title,
		"body":     body,
	}
	for k, v := range data {
		payload[k] = v
	}
	p.emit(ctx, eventbus.TopicPushNotifications, p.newEvent(ctx, entity.EventPushRequested, userID, payload))
}

func (p *Publisher) MatchVerificationCode(ctx context.Context, userID, email, matchTitle, code string) {
	p.emit(ctx, eventbus.TopicMatchEmails, p.newEvent(ctx, entity.EventMatchVerificationCode, userID, map[string]string{
		"email":      email,
		"matchTitle": matchTitle,
		"code":       code,
	}))
}

func (p *Publisher) MatchReminder(ctx context.Context, userID, email, matchTitle, startsAt string) {
	p.emit(ctx, eventbus.TopicMatchEmails, p.newEvent(ctx, entity.EventMatchReminder, userID, map[string]string{
		"email":      email,
		"matchTitle": matchTitle,
		"startsAt":   startsAt,
	}))
}
