package dto

import "time"

type CreateMatch struct {
	Title      string    `json:"title" validate:"required,min=3,max=100"`
	Sport      string    `json:"sport" validate:"required"`
	Location   string    `json:"location"`
	MaxPlayers int       `json:"maxPlayers" validate:"required,min=2,max=64"`
	StartsAt   time.Time `json:"startsAt" validate:"required"`
}

type UpdateMatch struct {
	Title      string    `json:"title" validate:"required,min=3,max=100"`
	Sport      string    `json:"sport" validate:"required"`
	Location   string    `json:"location"`
	MaxPlayers int       `json:"maxPlayers" validate:"required,min=2,max=64"`
	StartsAt   time.Time `json:"startsAt" validate:"required"`
}

type UpdateMatchStatus struct {
	Status string `json:"status" validate:"required,oneof=OPEN FULL IN_PROGRESS COMPLETED CANCELLED"`
}

type ResolveJoinRequest struct {
	RequesterID string `json:"requesterId" validate:"required,uuid"`
	Accept      bool   `json:"accept"`
}
