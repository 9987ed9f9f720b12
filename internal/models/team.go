package models

type Team struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	SessionID   string `gorm:"size:36;not null;index" json:"session_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Color       string `gorm:"size:20;not null" json:"color"`
	TotalPoints int    `gorm:"not null;default:0" json:"total_points"`
}
