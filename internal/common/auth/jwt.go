// internal/common/auth/jwt.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"talenthub/internal/common/database"
	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
)

const blacklistKeyPrefix = "auth:blacklist:"

// Claims carries the token payload. Mode distinguishes the portal the user
// authenticated through (admin, employee, freelancer, guest).
type Claims struct {
	UserID int64  `json:"user_id"`
	Mode   string `json:"mode"`
	jwt.RegisteredClaims
}

// Manager issues and validates bearer tokens. Revoked tokens are held in
// Redis until their natural expiry.
type Manager struct {
	secret      []byte
	tokenExpiry time.Duration
	redis       *database.RedisClient
	logger      logger.Logger
}

func NewManager(secret string, tokenExpiry time.Duration, redis *database.RedisClient, log logger.Logger) *Manager {
	return &Manager{
		secret:      []byte(secret),
		tokenExpiry: tokenExpiry,
		redis:       redis,
		logger:      log,
	}
}

// GenerateToken signs a token for the given identity.
func (m *Manager) GenerateToken(email string, userID int64, mode string) (string, time.Time, error) {
	expiresAt := time.Now().UTC().Add(m.tokenExpiry)

	claims := Claims{
		UserID: userID,
		Mode:   mode,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}

	return signed, expiresAt, nil
}

// ValidateToken parses the token, verifies the signature and expiry, and
// rejects blacklisted tokens.
func (m *Manager) ValidateToken(ctx context.Context, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewTokenExpiredError()
		}
		return nil, apperrors.NewAuthenticationError(err.Error())
	}
	if !token.Valid {
		return nil, apperrors.NewAuthenticationError("invalid token")
	}

	blacklisted, err := m.redis.Exists(ctx, blacklistKeyPrefix+tokenStr)
	if err != nil {
		// Redis being down must not lock every session out.
		m.logger.Warn("Blacklist check failed, accepting token", map[string]interface{}{
			"error": err.Error(),
		})
		return claims, nil
	}
	if blacklisted {
		return nil, apperrors.NewTokenBlacklistedError()
	}

	return claims, nil
}

// Blacklist revokes a token until its expiry. Already-expired tokens are a no-op.
func (m *Manager) Blacklist(ctx context.Context, tokenStr string) error {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
		return apperrors.NewAuthenticationError(err.Error())
	}

	if claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := m.redis.Set(ctx, blacklistKeyPrefix+tokenStr, "1", ttl); err != nil {
		return apperrors.NewCacheFailedError(err)
	}

	m.logger.Info("Token blacklisted", map[string]interface{}{
		"userId":    claims.UserID,
		"expiresIn": ttl.String(),
	})
	return nil
}
