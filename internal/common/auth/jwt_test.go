// internal/common/auth/jwt_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/common/config"
	"talenthub/internal/common/database"
	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
)

func newManagerTest(t *testing.T, expiry time.Duration) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	redis, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { redis.Close() })
	return NewManager("test-secret", expiry, redis, logger.NewTestLogger(t)), mr
}

func TestTokenRoundtrip(t *testing.T) {
	m, _ := newManagerTest(t, time.Hour)

	token, expiresAt, err := m.GenerateToken("asha@example.com", 7, "freelancer")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", claims.Subject)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "freelancer", claims.Mode)
}

func TestValidateTokenExpired(t *testing.T) {
	m, _ := newManagerTest(t, -time.Minute)

	token, _, err := m.GenerateToken("asha@example.com", 7, "guest")
	require.NoError(t, err)

	_, err = m.ValidateToken(context.Background(), token)
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeTokenExpired, stdErr.Code)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m, _ := newManagerTest(t, time.Hour)
	other, _ := newManagerTest(t, time.Hour)
	other.secret = []byte("different-secret")

	token, _, err := other.GenerateToken("asha@example.com", 7, "guest")
	require.NoError(t, err)

	_, err = m.ValidateToken(context.Background(), token)
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeAuthenticationFailed, stdErr.Code)
}

func TestBlacklistRevokesToken(t *testing.T) {
	m, mr := newManagerTest(t, time.Hour)

	token, _, err := m.GenerateToken("asha@example.com", 7, "admin")
	require.NoError(t, err)

	_, err = m.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, m.Blacklist(context.Background(), token))
	assert.True(t, mr.Exists(blacklistKeyPrefix+token))

	_, err = m.ValidateToken(context.Background(), token)
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeTokenBlacklisted, stdErr.Code)
}

func TestBlacklistExpiredTokenIsNoop(t *testing.T) {
	m, mr := newManagerTest(t, -time.Minute)

	token, _, err := m.GenerateToken("asha@example.com", 7, "guest")
	require.NoError(t, err)

	require.NoError(t, m.Blacklist(context.Background(), token))
	assert.False(t, mr.Exists(blacklistKeyPrefix+token))
}

func TestValidateTokenSurvivesRedisOutage(t *testing.T) {
	m, mr := newManagerTest(t, time.Hour)

	token, _, err := m.GenerateToken("asha@example.com", 7, "guest")
	require.NoError(t, err)

	mr.Close()

	claims, err := m.ValidateToken(context.Background(), token)
	require.NoError(t, err, "redis being down must not lock sessions out")
	assert.Equal(t, int64(7), claims.UserID)
}
