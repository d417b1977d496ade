package entity

import "time"

// Notification is the in-app notification record. It is written by consumers
// reacting to domain events and only ever mutated by mark-read.
type Notification struct {
	ID             string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         string `gorm:"type:uuid;not null;index"`
	MatchID        *string
	MatchCreatorID *string
	Type           EventType `gorm:"not null"`
	Title          string    `gorm:"not null"`
	Message        string    `gorm:"not null"`
	Read           bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"not null"`
}
