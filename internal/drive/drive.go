package drive

import (
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	driveDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/drive"
)

// Status is the lifecycle state of a placement drive. Open and closed drives count as approved.
type Status string

const (
	StatusPending  Status = "pending"
	StatusOpen     Status = "open"
	StatusRejected Status = "rejected"
	StatusClosed   Status = "closed"
)

var (
	ErrDriveNotFound = internal.NewNotFoundError("placement drive not found", internal.ErrCodeDriveNotFound)
	ErrNotOwner      = internal.NewForbiddenError("drive belongs to another company", internal.ErrCodeForbidden)
	ErrRejected      = internal.NewInvalidTransitionError("drive has been rejected; update it to resubmit", internal.ErrCodeDriveTransition)
	ErrNotApproved   = internal.NewInvalidTransitionError("only approved drives can be closed", internal.ErrCodeDriveTransition)
	ErrNotOpen       = internal.NewInvalidTransitionError("only open drives can be closed", internal.ErrCodeDriveTransition)
)

func (s Status) Approved() bool {
	return s == StatusOpen || s == StatusClosed
}

func (s Status) Approve() (Status, error) {
	if s == StatusRejected {
		return s, ErrRejected
	}
	return StatusOpen, nil
}

func (s Status) Reject() Status {
	return StatusRejected
}

// Close applies the closing rule of the acting role: admins may close any approved drive,
// the owning company only an open one.
func (s Status) Close(role internal.Role) (Status, error) {
	switch role {
	case internal.RoleAdmin:
		if !s.Approved() {
			return s, ErrNotApproved
		}
	case internal.RoleCompany:
		if s != StatusOpen {
			return s, ErrNotOpen
		}
	default:
		return s, internal.ErrForbidden
	}
	return StatusClosed, nil
}

type Drive struct {
	ID                  int64     `json:"id"`
	CompanyID           int64     `json:"company_id"`
	JobTitle            string    `json:"job_title"`
	JobDescription      string    `json:"job_description"`
	JobLocation         string    `json:"job_location"`
	JobType             string    `json:"job_type"`
	SalaryRange         *string   `json:"salary_range,omitempty"`
	EligibilityCriteria *string   `json:"eligibility_criteria,omitempty"`
	Positions           int       `json:"positions"`
	ApplicationDeadline time.Time `json:"application_deadline"`
	DatePosted          time.Time `json:"date_posted"`
	Status              Status    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Expired reports whether an open drive's deadline lies before today.
func (d *Drive) Expired(today time.Time) bool {
	return d.Status == StatusOpen && d.ApplicationDeadline.Before(internal.Today(today))
}

// Apply overwrites the editable fields and sends the drive back for approval.
func (d *Drive) Apply(dto DriveDTO) {
	d.JobTitle = dto.JobTitle
	d.JobDescription = dto.JobDescription
	d.JobLocation = dto.JobLocation
	d.JobType = dto.JobType
	d.SalaryRange = dto.SalaryRange
	d.EligibilityCriteria = dto.EligibilityCriteria
	d.Positions = dto.Positions
	d.ApplicationDeadline = internal.Today(dto.ApplicationDeadline.Time)
	d.Status = StatusPending
}

func (d *Drive) ToResponse() DriveResponse {
	return DriveResponse{
		Drive:    *d,
		Approved: d.Status.Approved(),
		Rejected: d.Status == StatusRejected,
	}
}

func NewDrive(companyID int64, dto DriveDTO) *Drive {
	now := time.Now()
	d := &Drive{
		CompanyID:  companyID,
		DatePosted: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	d.Apply(dto)
	return d
}

func ToDataModel(d *Drive) *driveDatamodel.PlacementDrive {
	return &driveDatamodel.PlacementDrive{
		ID:                  d.ID,
		CompanyID:           d.CompanyID,
		JobTitle:            d.JobTitle,
		JobDescription:      d.JobDescription,
		JobLocation:         d.JobLocation,
		JobType:             d.JobType,
		SalaryRange:         d.SalaryRange,
		EligibilityCriteria: d.EligibilityCriteria,
		Positions:           d.Positions,
		ApplicationDeadline: d.ApplicationDeadline,
		DatePosted:          d.DatePosted,
		Status:              string(d.Status),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func FromDataModel(d *driveDatamodel.PlacementDrive) *Drive {
	return &Drive{
		ID:                  d.ID,
		CompanyID:           d.CompanyID,
		JobTitle:            d.JobTitle,
		JobDescription:      d.JobDescription,
		JobLocation:         d.JobLocation,
		JobType:             d.JobType,
		SalaryRange:         d.SalaryRange,
		EligibilityCriteria: d.EligibilityCriteria,
		Positions:           d.Positions,
		ApplicationDeadline: d.ApplicationDeadline,
		DatePosted:          d.DatePosted,
		Status:              Status(d.Status),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}
