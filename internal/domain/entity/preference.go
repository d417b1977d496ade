package entity

import "time"

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

type Category string

const (
	CategoryMatchReminder Category = "match-reminder"
	CategoryMatchUpdate   Category = "match-update"
	CategoryPasswordReset Category = "password-reset"
	CategoryVerification  Category = "verification"
	CategoryJoinRequest   Category = "join-request"
	CategoryInvitation    Category = "invitation"
	CategoryChatMessage   Category = "chat-message"
	CategoryTeamUpdate    Category = "team-update"
)

// NotificationPreference holds the per-user channel toggles, one row per user.
// Every toggle defaults to true; a missing row means everything is enabled.
type NotificationPreference struct {
	UserID             string `gorm:"type:uuid;primaryKey"`
	EmailMatchReminder bool   `gorm:"not null;default:true"`
	EmailMatchUpdate   bool   `gorm:"not null;default:true"`
	EmailPasswordReset bool   `gorm:"not null;default:true"`
	EmailVerification  bool   `gorm:"not null;default:true"`
	PushJoinRequest    bool   `gorm:"not null;default:true"`
	PushInvitation     bool   `gorm:"not null;default:true"`
	PushMatchUpdate    bool   `gorm:"not null;default:true"`
	PushChatMessage    bool   `gorm:"not null;default:true"`
	PushTeamUpdate     bool   `gorm:"not null;default:true"`
	PushMatchReminder  bool   `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewNotificationPreference returns the default-allow row for a user.
func NewNotificationPreference(userID string) NotificationPreference {
	return NotificationPreference{
		UserID:             userID,
		EmailMatchReminder: true,
		EmailMatchUpdate:   true,
		EmailPasswordReset: true,
		EmailVerification:  true,
		PushJoinRequest:    true,
		PushInvitation:     true,
		PushMatchUpdate:    true,
		PushChatMessage:    true,
		PushTeamUpdate:     true,
		PushMatchReminder:  true,
	}
}

// Enabled reports whether the given channel/category pair is switched on.
// Unknown pairs are treated as enabled, matching the default-allow semantics.
func (p NotificationPreference) Enabled(channel Channel, category Category) bool {
	switch channel {
	case ChannelEmail:
		switch category {
		case CategoryMatchReminder:
			return p.EmailMatchReminder
		case CategoryMatchUpdate:
			return p.EmailMatchUpdate
		case CategoryPasswordReset:
			return p.EmailPasswordReset
		case CategoryVerification:
			return p.EmailVerification
		}
	case ChannelPush:
		switch category {
		case CategoryJoinRequest:
			return p.PushJoinRequest
		case CategoryInvitation:
			return p.PushInvitation
		case CategoryMatchUpdate:
			return p.PushMatchUpdate
		case CategoryChatMessage:
			return p.PushChatMessage
		case CategoryTeamUpdate:
			return p.PushTeamUpdate
		case CategoryMatchReminder:
			return p.PushMatchReminder
		}
	}
	return true
}
