package models

import "time"

type Player struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"size:36;not null;index" json:"session_id"`
	TeamID    string    `gorm:"size:36;not null" json:"team_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Role      string    `gorm:"size:20;not null;default:'player'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	PlayerRoleAdmin  = "admin"
	PlayerRolePlayer = "player"
)
