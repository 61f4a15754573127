package admin

import (
	"github.com/Dhrumivyas20/placement-portal/internal/directory"
	"github.com/Dhrumivyas20/placement-portal/internal/statistics"
)

// DefaultAdmin is the account created on boot when the admins table is empty.
type DefaultAdmin struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// DashboardResponse is the admin landing view: live counts plus the directory search.
type DashboardResponse struct {
	Statistics *statistics.AdminDashboard `json:"statistics"`
	Search     *directory.Results         `json:"search"`
}
