// internal/store/reset_tokens.go
package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
)

type ResetTokenStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewResetTokenStore(db *sql.DB, log logger.Logger) *ResetTokenStore {
	return &ResetTokenStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "reset_token_store"}),
	}
}

// Create stores a fresh reset code for the email and invalidates any codes
// issued earlier.
func (s *ResetTokenStore) Create(ctx context.Context, email, code string, expiresAt time.Time) error {
	email = strings.ToLower(strings.TrimSpace(email))
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("create reset code", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE email = $1 AND NOT used`, email); err != nil {
		return apperrors.NewQueryExecutionFailedError("create reset code", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO password_reset_tokens (email, code, expires_at)
		VALUES ($1, $2, $3)`, email, code, expiresAt); err != nil {
		return apperrors.NewDatabaseInsertFailedError(err)
	}
	return tx.Commit()
}

// Verify reports whether an unexpired, unused code exists for the email.
func (s *ResetTokenStore) Verify(ctx context.Context, email, code string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM password_reset_tokens
			WHERE email = $1 AND code = $2 AND NOT used AND expires_at > NOW()
		)`, strings.ToLower(strings.TrimSpace(email)), code).Scan(&exists)
	if err != nil {
		return false, apperrors.NewQueryExecutionFailedError("verify reset code", err)
	}
	return exists, nil
}

// Consume marks a verified code as used so it cannot be replayed.
func (s *ResetTokenStore) Consume(ctx context.Context, email, code string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE password_reset_tokens SET used = TRUE
		WHERE email = $1 AND code = $2 AND NOT used AND expires_at > NOW()`,
		strings.ToLower(strings.TrimSpace(email)), code)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("consume reset code", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewAuthenticationError("invalid or expired reset code")
	}
	return nil
}
