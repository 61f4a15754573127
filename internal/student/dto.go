package student

import "github.com/Dhrumivyas20/placement-portal/internal"

type RegisterStudentDTO struct {
	Name           string        `json:"name" validate:"required,max=120"`
	Email          string        `json:"email" validate:"required,email"`
	Password       string        `json:"password" validate:"required,min=8"`
	DateOfBirth    internal.Date `json:"date_of_birth,omitempty"`
	Phone          *string       `json:"phone,omitempty" validate:"omitempty,max=20"`
	Department     string        `json:"department" validate:"required"`
	CGPA           float64       `json:"cgpa" validate:"min=0,max=10"`
	JoiningYear    int           `json:"joining_year" validate:"required,min=1900"`
	GraduationYear int           `json:"graduation_year" validate:"required,gtefield=JoiningYear"`
	ResumeFilename *string       `json:"resume_filename,omitempty"`
}
