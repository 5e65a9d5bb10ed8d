package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`    // Never expose in JSON
	Role         string    `json:"role"` // admin or operator
	TOTPEnabled  bool      `json:"totp_enabled"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Verify2FARequest represents the second step of login for TOTP-enabled users
type Verify2FARequest struct {
	TempToken string `json:"temp_token"`
	Code      string `json:"code"`
}

// AuthResponse represents the response after successful authentication.
// When Requires2FA is set, Token is a short-lived temp token for step two.
type AuthResponse struct {
	Token       string `json:"token"`
	Requires2FA bool   `json:"requires_2fa,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// ChangePasswordRequest represents the request body for a self-service
// password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// TOTPSetupResponse carries the generated secret and QR code for the
// authenticator app enrollment screen
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"` // data: URL with base64 PNG
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// TOTPVerifyRequest represents the request body for verifying a TOTP code
type TOTPVerifyRequest struct {
	Code string `json:"code"`
}

// Disable2FARequest requires both the password and a current code
type Disable2FARequest struct {
	Password string `json:"password"`
	Code     string `json:"code"`
}
