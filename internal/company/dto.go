package company

import "time"

type RegisterCompanyDTO struct {
	Name           string  `json:"name" validate:"required,max=150"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	HRContactName  string  `json:"hr_contact_name" validate:"required"`
	HRContactEmail string  `json:"hr_contact_email" validate:"required,email"`
	Industry       string  `json:"industry" validate:"required"`
	Website        *string `json:"website,omitempty" validate:"omitempty,url"`
	Description    *string `json:"description,omitempty"`
}

type CompanyResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HRContactName  string    `json:"hr_contact_name"`
	HRContactEmail string    `json:"hr_contact_email"`
	Industry       string    `json:"industry"`
	Website        *string   `json:"website,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Status         Status    `json:"status"`
	Approved       bool      `json:"approved"`
	Rejected       bool      `json:"rejected"`
	Blacklisted    bool      `json:"blacklisted"`
	CreatedAt      time.Time `json:"created_at"`
}

type DriveSummary struct {
	ID                  int64     `json:"id"`
	JobTitle            string    `json:"job_title"`
	Status              string    `json:"status"`
	ApplicationDeadline time.Time `json:"application_deadline"`
}

// DetailResponse is the admin view of one company with its drives.
type DetailResponse struct {
	Company CompanyResponse `json:"company"`
	Drives  []DriveSummary  `json:"drives"`
}
