package dto

import (
	"time"

	"waste_backend/internal/feature/auth/domain/entity"
)

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the generic success body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a signed session token after a completed login.
type TokenResponse struct {
	Token string `json:"token"`
}

// LoginResponse is returned by /login. Exactly one of Token or
// TwoFactorRequired is meaningful; Challenge is set when a pending login
// challenge was stored for the second step.
type LoginResponse struct {
	Token             string `json:"token,omitempty"`
	TwoFactorRequired bool   `json:"two_factor_required,omitempty"`
	Challenge         string `json:"challenge,omitempty"`
}

// SetupTwoFactorResponse carries the enrollment data for an authenticator
// app: the otpauth URI to render as a QR code and the secret as a
// manual-entry fallback.
type SetupTwoFactorResponse struct {
	ProvisioningURI string `json:"provisioning_uri"`
	Secret          string `json:"secret"`
}

// UserResponse is the public view of a user. The password hash is never
// serialized.
type UserResponse struct {
	ID               uint      `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Department       string    `json:"department"`
	JobTitle         string    `json:"job_title"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		Department:       u.Department,
		JobTitle:         u.JobTitle,
		TwoFactorEnabled: u.TwoFactorEnabled,
		CreatedAt:        u.CreatedAt,
	}
}
