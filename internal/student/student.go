package student

import (
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
)

var (
	ErrStudentNotFound  = internal.NewNotFoundError("student not found", internal.ErrCodeStudentNotFound)
	ErrEmailTaken       = internal.NewConflictError("a student with this email already exists", internal.ErrCodeEmailTaken)
	ErrLoginBlacklisted = internal.NewForbiddenError("student has been blacklisted", internal.ErrCodeStudentBlacklisted)
)

type Student struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	Department     string     `json:"department"`
	CGPA           float64    `json:"cgpa"`
	JoiningYear    int        `json:"joining_year"`
	GraduationYear int        `json:"graduation_year"`
	ResumeFilename *string    `json:"resume_filename,omitempty"`
	IsActive       bool       `json:"is_active"`
	IsBlacklisted  bool       `json:"is_blacklisted"`
	CreatedAt      time.Time  `json:"created_at"`
}

// LoginError reports why a student with valid credentials may not open a session, or nil.
func (s *Student) LoginError() error {
	if s.IsBlacklisted {
		return ErrLoginBlacklisted
	}
	return nil
}

func (s *Student) HasResume() bool {
	return s.ResumeFilename != nil && *s.ResumeFilename != ""
}

func NewStudent(dto RegisterStudentDTO, passwordHash string) *Student {
	return &Student{
		Name:           dto.Name,
		Email:          dto.Email,
		PasswordHash:   passwordHash,
		DateOfBirth:    dto.DateOfBirth.Ptr(),
		Phone:          dto.Phone,
		Department:     dto.Department,
		CGPA:           dto.CGPA,
		JoiningYear:    dto.JoiningYear,
		GraduationYear: dto.GraduationYear,
		ResumeFilename: dto.ResumeFilename,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
}

func ToDataModel(s *Student) *studentDatamodel.Student {
	return &studentDatamodel.Student{
		ID:             s.ID,
		Name:           s.Name,
		Email:          s.Email,
		PasswordHash:   s.PasswordHash,
		DateOfBirth:    s.DateOfBirth,
		Phone:          s.Phone,
		Department:     s.Department,
		CGPA:           s.CGPA,
		JoiningYear:    s.JoiningYear,
		GraduationYear: s.GraduationYear,
		ResumeFilename: s.ResumeFilename,
		IsActive:       s.IsActive,
		IsBlacklisted:  s.IsBlacklisted,
		CreatedAt:      s.CreatedAt,
	}
}

func FromDataModel(s *studentDatamodel.Student) *Student {
	return &Student{
		ID:             s.ID,
		Name:           s.Name,
		Email:          s.Email,
		PasswordHash:   s.PasswordHash,
		DateOfBirth:    s.DateOfBirth,
		Phone:          s.Phone,
		Department:     s.Department,
		CGPA:           s.CGPA,
		JoiningYear:    s.JoiningYear,
		GraduationYear: s.GraduationYear,
		ResumeFilename: s.ResumeFilename,
		IsActive:       s.IsActive,
		IsBlacklisted:  s.IsBlacklisted,
		CreatedAt:      s.CreatedAt,
	}
}
