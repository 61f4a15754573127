package statistics

import (
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	statisticsDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/statistics"
)

var ErrSnapshotExists = internal.NewConflictError("statistics for this year were already recorded", internal.ErrCodeSnapshotExists)

// DriveStats counts decisions on one open drive.
type DriveStats struct {
	DriveID      int64  `json:"drive_id" db:"drive_id"`
	JobTitle     string `json:"job_title" db:"job_title"`
	CompanyID    int64  `json:"company_id" db:"company_id"`
	CompanyName  string `json:"company_name" db:"company_name"`
	Applications int64  `json:"applications" db:"applications"`
	Shortlisted  int64  `json:"shortlisted" db:"shortlisted"`
	Selected     int64  `json:"selected" db:"selected"`
}

type AdminCounts struct {
	TotalStudents     int64 `json:"total_students" db:"total_students"`
	TotalCompanies    int64 `json:"total_companies" db:"total_companies"`
	ApprovedCompanies int64 `json:"approved_companies" db:"approved_companies"`
	TotalApplications int64 `json:"total_applications" db:"total_applications"`
	TotalDrives       int64 `json:"total_drives" db:"total_drives"`
}

type CompanyCounts struct {
	TotalDrives       int64 `json:"total_drives" db:"total_drives"`
	ApprovedDrives    int64 `json:"approved_drives" db:"approved_drives"`
	TotalApplications int64 `json:"total_applications" db:"total_applications"`
}

type AdminDashboard struct {
	AdminCounts
	Drives           []DriveStats `json:"drives"`
	TotalShortlisted int64        `json:"total_shortlisted"`
	TotalSelected    int64        `json:"total_selected"`
}

type CompanyDashboard struct {
	CompanyCounts
	Drives           []DriveStats `json:"drives"`
	TotalShortlisted int64        `json:"total_shortlisted"`
	TotalSelected    int64        `json:"total_selected"`
	ClosedExpired    []int64      `json:"closed_expired"`
}

type StudentDashboard struct {
	TotalApplications int64            `json:"total_applications"`
	ByStatus          map[string]int64 `json:"by_status"`
	OpenDrives        int64            `json:"open_drives"`
}

// SnapshotInputs are the live counts a yearly snapshot is built from.
type SnapshotInputs struct {
	TotalStudents        int64 `db:"total_students"`
	PlacedStudents       int64 `db:"placed_students"`
	CompanyParticipation int64 `db:"company_participation"`
}

type Snapshot struct {
	ID                   int64     `json:"id"`
	Year                 int       `json:"year"`
	TotalStudents        int       `json:"total_students"`
	PlacedStudents       int       `json:"placed_students"`
	CompanyParticipation int       `json:"company_participation"`
	AverageSalary        *float64  `json:"average_salary,omitempty"`
	HighestSalary        *float64  `json:"highest_salary,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

func totals(drives []DriveStats) (shortlisted, selected int64) {
	for _, d := range drives {
		shortlisted += d.Shortlisted
		selected += d.Selected
	}
	return shortlisted, selected
}

// YearRange is [Jan 1 of year, Jan 1 of the next year) in UTC.
func YearRange(year int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

func ToDataModel(s *Snapshot) *statisticsDatamodel.PlacementStatistics {
	return &statisticsDatamodel.PlacementStatistics{
		ID:                   s.ID,
		Year:                 s.Year,
		TotalStudents:        s.TotalStudents,
		PlacedStudents:       s.PlacedStudents,
		CompanyParticipation: s.CompanyParticipation,
		AverageSalary:        s.AverageSalary,
		HighestSalary:        s.HighestSalary,
		CreatedAt:            s.CreatedAt,
	}
}

func FromDataModel(s *statisticsDatamodel.PlacementStatistics) *Snapshot {
	return &Snapshot{
		ID:                   s.ID,
		Year:                 s.Year,
		TotalStudents:        s.TotalStudents,
		PlacedStudents:       s.PlacedStudents,
		CompanyParticipation: s.CompanyParticipation,
		AverageSalary:        s.AverageSalary,
		HighestSalary:        s.HighestSalary,
		CreatedAt:            s.CreatedAt,
	}
}
