package models

import (
	"time"

	"gorm.io/datatypes"
)

// SpinResult records a server-side spin. Entry holds a JSON snapshot of the
// winning entry at spin time, so history stays readable after edits or deletes.
type SpinResult struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	WheelID   uint           `gorm:"not null;index" json:"wheelId"`
	Entry     datatypes.JSON `gorm:"not null" json:"entry"`
	CreatedAt time.Time      `json:"createdAt"`
}
