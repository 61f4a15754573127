package student

import "time"

type Student struct {
	ID             int64      `gorm:"primaryKey"`
	Name           string     `gorm:"column:name;not null"`
	Email          string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash   string     `gorm:"column:password_hash;not null"`
	DateOfBirth    *time.Time `gorm:"column:date_of_birth;type:date"`
	Phone          *string    `gorm:"column:phone"`
	Department     string     `gorm:"column:department;not null"`
	CGPA           float64    `gorm:"column:cgpa;not null"`
	JoiningYear    int        `gorm:"column:joining_year;not null"`
	GraduationYear int        `gorm:"column:graduation_year;not null"`
	ResumeFilename *string    `gorm:"column:resume_filename"`
	IsActive       bool       `gorm:"column:is_active;default:true"`
	IsBlacklisted  bool       `gorm:"column:is_blacklisted;default:false"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Student) TableName() string {
	return "students"
}
