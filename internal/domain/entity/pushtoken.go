package entity

import "time"

// PushToken is one registered device token. A user may hold several rows, one
// per device.
type PushToken struct {
	ID        string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_push_tokens_user_token"`
	ExpoToken string    `gorm:"not null;uniqueIndex:idx_push_tokens_user_token"`
	CreatedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
