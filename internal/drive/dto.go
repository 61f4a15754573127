package drive

import "github.com/Dhrumivyas20/placement-portal/internal"

// DriveDTO carries the editable fields of a drive for both create and update.
type DriveDTO struct {
	JobTitle            string        `json:"job_title" validate:"required,max=200"`
	JobDescription      string        `json:"job_description" validate:"required"`
	JobLocation         string        `json:"job_location" validate:"required"`
	JobType             string        `json:"job_type" validate:"required"`
	SalaryRange         *string       `json:"salary_range,omitempty"`
	EligibilityCriteria *string       `json:"eligibility_criteria,omitempty"`
	Positions           int           `json:"positions" validate:"min=1"`
	ApplicationDeadline internal.Date `json:"application_deadline" validate:"required"`
}

type DriveResponse struct {
	Drive
	Approved bool `json:"approved"`
	Rejected bool `json:"rejected"`
}
