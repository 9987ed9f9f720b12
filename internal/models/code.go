package models

import "time"

// Code is a single-use redemption code. Once UsedByTeamID is set the code is
// part of the permanent audit trail and never changes again.
type Code struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	SessionID    string     `gorm:"size:36;not null;index" json:"session_id"`
	CodeString   string     `gorm:"size:100;not null;index" json:"code_string"`
	UsedByTeamID *string    `gorm:"size:36" json:"used_by_team_id"`
	UsedAt       *time.Time `json:"used_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (c *Code) Redeemed() bool {
	return c.UsedByTeamID != nil
}
