// internal/common/auth/password.go
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// AdminRoles are the user types allowed through the admin gate.
var AdminRoles = map[string]bool{
	"admin":              true,
	"talent_acquisition": true,
	"hr":                 true,
}

// IsAdminRole reports whether a user type may access admin endpoints.
func IsAdminRole(userType string) bool {
	return AdminRoles[userType]
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateTempPassword returns a url-safe random password for invited users.
func GenerateTempPassword(entropyBytes int) (string, error) {
	if entropyBytes <= 0 {
		entropyBytes = 12
	}
	buf := make([]byte, entropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateResetCode returns a 6-digit numeric code for password resets.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
