package admin

import (
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	adminDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/admin"
)

var ErrAdminNotFound = internal.NewNotFoundError("admin not found", internal.ErrCodeAdminNotFound)

type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToDataModel(a *Admin) *adminDatamodel.Admin {
	return &adminDatamodel.Admin{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		CreatedAt:    a.CreatedAt,
	}
}

func FromDataModel(a *adminDatamodel.Admin) *Admin {
	return &Admin{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		CreatedAt:    a.CreatedAt,
	}
}
