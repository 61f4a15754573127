package statistics

import "time"

// PlacementStatistics is a write-once yearly snapshot. The db tags serve the sqlx aggregate repository.
type PlacementStatistics struct {
	ID                   int64     `gorm:"primaryKey" db:"id"`
	Year                 int       `gorm:"column:year;uniqueIndex;not null" db:"year"`
	TotalStudents        int       `gorm:"column:total_students;not null" db:"total_students"`
	PlacedStudents       int       `gorm:"column:placed_students;not null" db:"placed_students"`
	CompanyParticipation int       `gorm:"column:company_participation;not null" db:"company_participation"`
	AverageSalary        *float64  `gorm:"column:average_salary" db:"average_salary"`
	HighestSalary        *float64  `gorm:"column:highest_salary" db:"highest_salary"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" db:"created_at"`
}

func (PlacementStatistics) TableName() string {
	return "placement_statistics"
}
