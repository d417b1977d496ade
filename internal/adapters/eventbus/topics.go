package eventbus

// Logical channels carried by the bus. Each topic fans out over a fixed set
// of partition streams, see partitionFor.
const (
	TopicUserEvents        = "user-events"
	TopicAuthEvents        = "auth-events"
	TopicMatchEvents       = "match-events"
	TopicPushNotifications = "push-notifications"
	TopicEmailVerification = "email-verification-events"
	TopicMatchEmails       = "match-email-events"
	TopicPasswordReset     = "password-reset-events"
)
