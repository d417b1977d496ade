package entity

import "time"

// User mirrors the identity provider's subject: ID is the provider-issued
// subject id, not a locally generated key.
type User struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	Email         string `gorm:"not null;uniqueIndex"`
	Username      string `gorm:"not null"`
	FirstName     string
	LastName      string
	EmailVerified bool `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
