package session

import "time"

// RevokedSession marks a session token id as logged out until the token would have expired anyway.
type RevokedSession struct {
	ID        int64     `gorm:"primaryKey"`
	TokenID   string    `gorm:"column:token_id;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	RevokedAt time.Time `gorm:"column:revoked_at;autoCreateTime"`
}

func (RevokedSession) TableName() string {
	return "revoked_sessions"
}
