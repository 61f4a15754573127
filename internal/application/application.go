package application

import (
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	applicationDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/application"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusShortlisted Status = "Shortlisted"
	StatusSelected    Status = "Selected"
	StatusRejected    Status = "Rejected"
)

var (
	ErrApplicationNotFound = internal.NewNotFoundError("application not found", internal.ErrCodeApplicationNotFound)
	ErrInvalidStatus       = internal.NewValidationFieldError("status", "status must be one of Shortlisted, Selected, Rejected", internal.ErrCodeInvalidStatus)
	ErrResumeNotFound      = internal.NewNotFoundError("student has not uploaded a resume", internal.ErrCodeResumeNotFound)
	ErrNotOwner            = internal.NewForbiddenError("application belongs to another company's drive", internal.ErrCodeForbidden)
	ErrDecisionFinal       = internal.NewInvalidTransitionError("application decision is already final", internal.ErrCodeApplicationTransition)
)

// ParseDecision accepts only the statuses a company may set. Pending is never a valid target.
func ParseDecision(s string) (Status, error) {
	switch Status(s) {
	case StatusShortlisted, StatusSelected, StatusRejected:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// CanMoveTo reports whether a decision may replace the current status.
// Shortlisted can still become Selected or Rejected; those two are final.
func (s Status) CanMoveTo(next Status) bool {
	switch s {
	case StatusPending:
		return true
	case StatusShortlisted:
		return next == StatusSelected || next == StatusRejected
	}
	return false
}

type Application struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	DriveID   int64     `json:"drive_id"`
	AppliedAt time.Time `json:"applied_at"`
	Status    Status    `json:"status"`
	Remarks   *string   `json:"remarks,omitempty"`
}

// View is an application joined with the student and drive it references.
type View struct {
	ID             int64     `json:"id"`
	StudentID      int64     `json:"student_id"`
	StudentName    string    `json:"student_name"`
	StudentEmail   string    `json:"student_email"`
	Department     string    `json:"department"`
	CGPA           float64   `json:"cgpa"`
	HasResume      bool      `json:"has_resume"`
	DriveID        int64     `json:"drive_id"`
	CompanyID      int64     `json:"company_id"`
	JobTitle       string    `json:"job_title"`
	AppliedAt      time.Time `json:"applied_at"`
	Status         Status    `json:"status"`
	Remarks        *string   `json:"remarks,omitempty"`
	ResumeFilename *string   `json:"-"`
}

// Ownership is what the access checks need to know about an application.
type Ownership struct {
	ApplicationID  int64
	StudentID      int64
	CompanyID      int64
	ResumeFilename *string
}

func NewApplication(studentID, driveID int64) *Application {
	return &Application{
		StudentID: studentID,
		DriveID:   driveID,
		AppliedAt: time.Now(),
		Status:    StatusPending,
	}
}

func ToDataModel(a *Application) *applicationDatamodel.Application {
	return &applicationDatamodel.Application{
		ID:        a.ID,
		StudentID: a.StudentID,
		DriveID:   a.DriveID,
		AppliedAt: a.AppliedAt,
		Status:    string(a.Status),
		Remarks:   a.Remarks,
	}
}

func FromDataModel(a *applicationDatamodel.Application) *Application {
	return &Application{
		ID:        a.ID,
		StudentID: a.StudentID,
		DriveID:   a.DriveID,
		AppliedAt: a.AppliedAt,
		Status:    Status(a.Status),
		Remarks:   a.Remarks,
	}
}
