package company

import "time"

type Company struct {
	ID             int64     `gorm:"primaryKey"`
	Name           string    `gorm:"column:name;uniqueIndex;not null"`
	Email          string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash   string    `gorm:"column:password_hash;not null"`
	HRContactName  string    `gorm:"column:hr_contact_name;not null"`
	HRContactEmail string    `gorm:"column:hr_contact_email;not null"`
	Industry       string    `gorm:"column:industry;not null"`
	Website        *string   `gorm:"column:website"`
	Description    *string   `gorm:"column:description"`
	ApprovalStatus string    `gorm:"column:approval_status;not null;default:pending"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Company) TableName() string {
	return "companies"
}
