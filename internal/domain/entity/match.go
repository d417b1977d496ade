package entity

import "time"

type MatchStatus string

const (
	MatchStatusOpen       MatchStatus = "OPEN"
	MatchStatusFull       MatchStatus = "FULL"
	MatchStatusInProgress MatchStatus = "IN_PROGRESS"
	MatchStatusCompleted  MatchStatus = "COMPLETED"
	MatchStatusCancelled  MatchStatus = "CANCELLED"
)

type Match struct {
	ID         string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID  string `gorm:"type:uuid;not null;index"`
	Title      string `gorm:"not null"`
	Sport      string `gorm:"not null"`
	Location   string
	MaxPlayers int         `gorm:"not null"`
	Status     MatchStatus `gorm:"not null;default:'OPEN'"`
	StartsAt   time.Time   `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Creator User `gorm:"foreignKey:CreatorID"`
}
