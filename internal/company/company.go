package company

import (
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	companyDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/company"
)

// Status is the single approval state of a company. Blacklisted overrides any earlier verdict.
type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusBlacklisted Status = "blacklisted"
)

var (
	ErrCompanyNotFound = internal.NewNotFoundError("company not found", internal.ErrCodeCompanyNotFound)
	ErrEmailTaken      = internal.NewConflictError("a company with this email already exists", internal.ErrCodeEmailTaken)
	ErrNameTaken       = internal.NewConflictError("a company with this name already exists", internal.ErrCodeNameTaken)
	ErrBlacklisted     = internal.NewInvalidTransitionError("company is blacklisted", internal.ErrCodeCompanyTransition)

	ErrLoginPending     = internal.NewForbiddenError("company registration is awaiting admin approval", internal.ErrCodeCompanyPending)
	ErrLoginRejected    = internal.NewForbiddenError("company registration was rejected", internal.ErrCodeCompanyRejected)
	ErrLoginBlacklisted = internal.NewForbiddenError("company has been blacklisted", internal.ErrCodeCompanyBlacklisted)
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusBlacklisted:
		return true
	}
	return false
}

func (s Status) Approve() (Status, error) {
	if s == StatusBlacklisted {
		return s, ErrBlacklisted
	}
	return StatusApproved, nil
}

func (s Status) Reject() (Status, error) {
	if s == StatusBlacklisted {
		return s, ErrBlacklisted
	}
	return StatusRejected, nil
}

func (s Status) Blacklist() Status {
	return StatusBlacklisted
}

// Unblacklist reinstates the company as approved whatever its earlier verdict was.
func (s Status) Unblacklist() Status {
	return StatusApproved
}

func (s Status) ToggleBlacklist() Status {
	if s == StatusBlacklisted {
		return s.Unblacklist()
	}
	return s.Blacklist()
}

// LoginError reports why a company with valid credentials may not open a session, or nil.
func (s Status) LoginError() error {
	switch s {
	case StatusApproved:
		return nil
	case StatusRejected:
		return ErrLoginRejected
	case StatusBlacklisted:
		return ErrLoginBlacklisted
	default:
		return ErrLoginPending
	}
}

type Company struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	HRContactName  string    `json:"hr_contact_name"`
	HRContactEmail string    `json:"hr_contact_email"`
	Industry       string    `json:"industry"`
	Website        *string   `json:"website,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (c *Company) IsApproved() bool {
	return c.Status == StatusApproved
}

func (c *Company) IsBlacklisted() bool {
	return c.Status == StatusBlacklisted
}

func (c *Company) ToResponse() CompanyResponse {
	return CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		HRContactName:  c.HRContactName,
		HRContactEmail: c.HRContactEmail,
		Industry:       c.Industry,
		Website:        c.Website,
		Description:    c.Description,
		Status:         c.Status,
		Approved:       c.IsApproved(),
		Rejected:       c.Status == StatusRejected,
		Blacklisted:    c.IsBlacklisted(),
		CreatedAt:      c.CreatedAt,
	}
}

func NewCompany(dto RegisterCompanyDTO, passwordHash string) *Company {
	now := time.Now()
	return &Company{
		Name:           dto.Name,
		Email:          dto.Email,
		PasswordHash:   passwordHash,
		HRContactName:  dto.HRContactName,
		HRContactEmail: dto.HRContactEmail,
		Industry:       dto.Industry,
		Website:        dto.Website,
		Description:    dto.Description,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func ToDataModel(c *Company) *companyDatamodel.Company {
	return &companyDatamodel.Company{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		PasswordHash:   c.PasswordHash,
		HRContactName:  c.HRContactName,
		HRContactEmail: c.HRContactEmail,
		Industry:       c.Industry,
		Website:        c.Website,
		Description:    c.Description,
		ApprovalStatus: string(c.Status),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func FromDataModel(c *companyDatamodel.Company) *Company {
	return &Company{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		PasswordHash:   c.PasswordHash,
		HRContactName:  c.HRContactName,
		HRContactEmail: c.HRContactEmail,
		Industry:       c.Industry,
		Website:        c.Website,
		Description:    c.Description,
		Status:         Status(c.ApprovalStatus),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
