// internal/models/employee.go
package models

import "time"

// CompanyEmployee is a row of the verification list uploaded by admins.
// EmployeeID is stored uppercase, Email lowercase.
type CompanyEmployee struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// AppConfig is a key/value application setting.
const AppConfigEmployeeVerification = "employee_verification_enabled"

type AppConfig struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PasswordResetToken holds a pending 6-digit reset code.
type PasswordResetToken struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}
