package models

import "time"

// Entry is one prize slot on a wheel. Disabled entries stay on the wheel but
// are excluded from spin selection.
type Entry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WheelID   uint      `gorm:"not null;index" json:"wheelId"`
	Label     string    `gorm:"not null" json:"label"`
	PersonID  uint      `gorm:"not null" json:"-"`
	Person    Person    `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"person"`
	Disabled  bool      `gorm:"not null;default:false" json:"disabled"`
	CreatedAt time.Time `json:"createdAt"`
}
