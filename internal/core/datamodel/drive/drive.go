package drive

import "time"

type PlacementDrive struct {
	ID                  int64     `gorm:"primaryKey"`
	CompanyID           int64     `gorm:"column:company_id;not null;index"`
	JobTitle            string    `gorm:"column:job_title;not null"`
	JobDescription      string    `gorm:"column:job_description;not null"`
	JobLocation         string    `gorm:"column:job_location;not null"`
	JobType             string    `gorm:"column:job_type;not null"`
	SalaryRange         *string   `gorm:"column:salary_range"`
	EligibilityCriteria *string   `gorm:"column:eligibility_criteria"`
	Positions           int       `gorm:"column:positions;not null"`
	ApplicationDeadline time.Time `gorm:"column:application_deadline;type:date;not null"`
	DatePosted          time.Time `gorm:"column:date_posted"`
	Status              string    `gorm:"column:status;not null;default:pending;index"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PlacementDrive) TableName() string {
	return "placement_drives"
}
