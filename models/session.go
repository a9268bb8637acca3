package models

import "time"

// AdminSession proves prior possession of the admin token. ExpiresAt is always
// LastUsedAt + TTL; a row past its ExpiresAt is dead and gets deleted lazily on
// the next lookup.
type AdminSession struct {
	ID         string    `gorm:"primaryKey" json:"sessionId"`
	CreatedAt  time.Time `json:"createdAt"`
	LastUsedAt time.Time `gorm:"not null" json:"lastUsedAt"`
	ExpiresAt  time.Time `gorm:"not null" json:"expiresAt"`
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}
