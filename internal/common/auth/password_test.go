// internal/common/auth/password_test.go
package auth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword(hash, "s3cret-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret-password"))
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := GenerateTempPassword(12)
	require.NoError(t, err)
	assert.Len(t, pw, 16, "12 entropy bytes encode to 16 url-safe chars")
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9_-]+$`), pw)

	other, err := GenerateTempPassword(12)
	require.NoError(t, err)
	assert.NotEqual(t, pw, other)

	// non-positive sizes fall back to the default
	fallback, err := GenerateTempPassword(0)
	require.NoError(t, err)
	assert.Len(t, fallback, 16)
}

func TestGenerateResetCode(t *testing.T) {
	code, err := GenerateResetCode()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
}

func TestIsAdminRole(t *testing.T) {
	assert.True(t, IsAdminRole("admin"))
	assert.True(t, IsAdminRole("talent_acquisition"))
	assert.True(t, IsAdminRole("hr"))
	assert.False(t, IsAdminRole("freelancer"))
	assert.False(t, IsAdminRole("guest"))
	assert.False(t, IsAdminRole(""))
}
