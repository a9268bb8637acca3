package models

import "time"

type Wheel struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"not null" json:"name"`
	SpinDurationSeconds int       `gorm:"not null;default:5" json:"spinDurationSeconds"`
	CreatedAt           time.Time `json:"createdAt"`
	Entries             []Entry   `gorm:"foreignKey:WheelID;constraint:OnDelete:CASCADE" json:"entries"`
}
