package application

import "time"

type Application struct {
	ID        int64     `gorm:"primaryKey"`
	StudentID int64     `gorm:"column:student_id;not null;index"`
	DriveID   int64     `gorm:"column:drive_id;not null;index"`
	AppliedAt time.Time `gorm:"column:applied_at"`
	Status    string    `gorm:"column:status;not null;default:pending"`
	Remarks   *string   `gorm:"column:remarks"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Application) TableName() string {
	return "applications"
}
