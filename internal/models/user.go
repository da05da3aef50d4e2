// internal/models/user.go
package models

import "time"

// UserType values. gmail marks accounts auto-created through Google login.
const (
	UserTypeCompanyEmployee   = "company_employee"
	UserTypeFreelancer        = "freelancer"
	UserTypeGuest             = "guest"
	UserTypeAdmin             = "admin"
	UserTypeTalentAcquisition = "talent_acquisition"
	UserTypeHR                = "hr"
	UserTypeGmail             = "gmail"
)

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	UserType     string     `json:"user_type"`
	SourceID     string     `json:"source_id,omitempty"` // employee id or freelancer id
	Phone        string     `json:"phone,omitempty"`
	PhotoData    []byte     `json:"-"`
	PhotoMime    string     `json:"-"`
	MustReset    bool       `json:"must_reset,omitempty"` // invited users carry a temp password
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

type SignupRequest struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	UserType   string `json:"user_type"`
	EmployeeID string `json:"employee_id,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type InviteUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}
