package models

import "time"

// Scan is the append-only audit record of one successful code redemption.
// RandSeed keeps the raw uniform draw that produced the payout.
type Scan struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"size:36;not null;index" json:"session_id"`
	TeamID    string    `gorm:"size:36;not null;index" json:"team_id"`
	PlayerID  string    `gorm:"size:36;not null" json:"player_id"`
	CodeID    string    `gorm:"size:36;not null;uniqueIndex" json:"code_id"`
	Points    int       `gorm:"not null" json:"points"`
	RandSeed  float64   `gorm:"not null" json:"rand_seed"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
