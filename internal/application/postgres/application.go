package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal/application"
	applicationDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/application"
	driveDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/drive"
	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
	"github.com/Dhrumivyas20/placement-portal/internal/drive"
	"github.com/Dhrumivyas20/placement-portal/internal/student"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

type viewRow struct {
	ID             int64
	StudentID      int64
	StudentName    string
	StudentEmail   string
	Department     string
	CGPA           float64 `gorm:"column:cgpa"`
	ResumeFilename *string
	DriveID        int64
	CompanyID      int64
	JobTitle       string
	AppliedAt      time.Time
	Status         string
	Remarks        *string
}

func (v viewRow) toView() application.View {
	return application.View{
		ID:             v.ID,
		StudentID:      v.StudentID,
		StudentName:    v.StudentName,
		StudentEmail:   v.StudentEmail,
		Department:     v.Department,
		CGPA:           v.CGPA,
		HasResume:      v.ResumeFilename != nil && *v.ResumeFilename != "",
		DriveID:        v.DriveID,
		CompanyID:      v.CompanyID,
		JobTitle:       v.JobTitle,
		AppliedAt:      v.AppliedAt,
		Status:         application.Status(v.Status),
		Remarks:        v.Remarks,
		ResumeFilename: v.ResumeFilename,
	}
}

const viewColumns = `a.id, a.student_id, s.name AS student_name, s.email AS student_email, s.department, s.cgpa,
	s.resume_filename, a.drive_id, d.company_id, d.job_title, a.applied_at, a.status, a.remarks`

func (r *ApplicationRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("applications AS a").
		Select(viewColumns).
		Joins("JOIN students AS s ON s.id = a.student_id").
		Joins("JOIN placement_drives AS d ON d.id = a.drive_id")
}

// Create checks that the student and drive exist in the same transaction as the insert.
func (r *ApplicationRepository) Create(ctx context.Context, row *applicationDatamodel.Application) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&studentDatamodel.Student{}).Where("id = ?", row.StudentID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return student.ErrStudentNotFound
		}
		if err := tx.Model(&driveDatamodel.PlacementDrive{}).Where("id = ?", row.DriveID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return drive.ErrDriveNotFound
		}
		if row.AppliedAt.IsZero() {
			row.AppliedAt = time.Now()
		}
		return tx.Create(row).Error
	})
}

func (r *ApplicationRepository) Transition(ctx context.Context, id int64, fn func(row *applicationDatamodel.Application, owner application.Ownership) error) (*applicationDatamodel.Application, error) {
	var row applicationDatamodel.Application
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return application.ErrApplicationNotFound
			}
			return err
		}

		var d driveDatamodel.PlacementDrive
		if err := tx.Select("id", "company_id").First(&d, row.DriveID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return drive.ErrDriveNotFound
			}
			return err
		}

		owner := application.Ownership{ApplicationID: row.ID, StudentID: row.StudentID, CompanyID: d.CompanyID}
		if err := fn(&row, owner); err != nil {
			return err
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ApplicationRepository) Ownership(ctx context.Context, id int64) (*application.Ownership, error) {
	var rows []viewRow
	if err := r.joined(ctx).Where("a.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, application.ErrApplicationNotFound
	}
	v := rows[0]
	return &application.Ownership{
		ApplicationID:  v.ID,
		StudentID:      v.StudentID,
		CompanyID:      v.CompanyID,
		ResumeFilename: v.ResumeFilename,
	}, nil
}

func (r *ApplicationRepository) DriveOwner(ctx context.Context, driveID int64) (int64, error) {
	var d driveDatamodel.PlacementDrive
	if err := r.db.WithContext(ctx).Select("id", "company_id").First(&d, driveID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, drive.ErrDriveNotFound
		}
		return 0, err
	}
	return d.CompanyID, nil
}

func (r *ApplicationRepository) ListByDrive(ctx context.Context, driveID int64) ([]application.View, error) {
	return r.list(r.joined(ctx).Where("a.drive_id = ?", driveID))
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]application.View, error) {
	return r.list(r.joined(ctx).Where("a.student_id = ?", studentID))
}

func (r *ApplicationRepository) list(q *gorm.DB) ([]application.View, error) {
	var rows []viewRow
	if err := q.Order("a.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	views := make([]application.View, 0, len(rows))
	for _, v := range rows {
		views = append(views, v.toView())
	}
	return views, nil
}
