package admin

import "time"

type Admin struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;not null;default:admin"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Admin) TableName() string {
	return "admins"
}
