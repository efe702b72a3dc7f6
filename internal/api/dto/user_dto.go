package dto

import (
	"time"

	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
)

// RegisterRequest payload for new users.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login. The role and username are
// echoed in plaintext for client convenience.
type AuthResponse struct {
	Token    string          `json:"token"`
	Role     domain.UserRole `json:"role"`
	Username string          `json:"username"`
}

// UserResponse is an identity summary with the password hash excluded.
type UserResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PasswordResetRequest starts a reset flow.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest completes a reset flow.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
