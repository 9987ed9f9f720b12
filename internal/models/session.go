package models

import "time"

type Session struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Name         string     `gorm:"size:200;not null" json:"name"`
	Status       string     `gorm:"size:20;not null;default:'setup'" json:"status"`
	TimerSeconds int        `gorm:"not null;default:900" json:"timer_seconds"`
	StartAt      *time.Time `json:"start_at"`
	EndAt        *time.Time `json:"end_at"`
	JackpotHeat  int        `gorm:"not null;default:0" json:"jackpot_heat"`
	CreatedAt    time.Time  `json:"created_at"`
}

const (
	SessionStatusSetup  = "setup"
	SessionStatusActive = "active"
	SessionStatusEnded  = "ended"
)

// MaxJackpotHeat caps the per-session heat counter.
const MaxJackpotHeat = 30
