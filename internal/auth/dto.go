package auth

import (
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
)

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	AccountID int64         `json:"account_id"`
	Role      internal.Role `json:"role"`
	ExpiresAt time.Time     `json:"expires_at"`
}
