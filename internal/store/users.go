// internal/store/users.go
package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"

	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/models"
)

// UserStore persists accounts.
type UserStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewUserStore(db *sql.DB, log logger.Logger) *UserStore {
	return &UserStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "user_store"}),
	}
}

const userColumns = `id, email, password_hash, full_name, user_type, source_id, phone, must_reset, last_login_at, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.UserType,
		&u.SourceID, &u.Phone, &u.MustReset, &lastLogin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return &u, nil
}

// Create inserts a new account. Emails are stored lowercase; a duplicate
// email returns DUPLICATE_EMAIL.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, full_name, user_type, source_id, phone, must_reset)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		email, u.PasswordHash, u.FullName, u.UserType, u.SourceID, u.Phone, u.MustReset,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperrors.NewDuplicateEmailError(email)
		}
		return apperrors.NewDatabaseInsertFailedError(err)
	}
	u.Email = email
	s.logger.Info("user created", map[string]interface{}{"userId": u.ID, "userType": u.UserType})
	return nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewUserNotFoundError(email)
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get user by email", err)
	}
	return u, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewUserNotFoundError("")
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get user by id", err)
	}
	return u, nil
}

// UpdatePassword replaces the password hash and clears the forced-reset flag.
func (s *UserStore) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $2, must_reset = FALSE, updated_at = NOW()
		WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)), passwordHash)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("update password", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewUserNotFoundError(email)
	}
	return nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, id int64, req *models.UpdateProfileRequest) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			full_name = COALESCE(NULLIF($2, ''), full_name),
			phone = COALESCE(NULLIF($3, ''), phone),
			updated_at = NOW()
		WHERE id = $1`,
		id, req.FullName, req.Phone)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("update profile", err)
	}
	return nil
}

func (s *UserStore) UpdatePhoto(ctx context.Context, id int64, data []byte, mime string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET photo_data = $2, photo_mime = $3, updated_at = NOW()
		WHERE id = $1`, id, data, mime)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("update photo", err)
	}
	return nil
}

func (s *UserStore) GetPhoto(ctx context.Context, id int64) ([]byte, string, error) {
	var data []byte
	var mime string
	err := s.db.QueryRowContext(ctx,
		`SELECT photo_data, photo_mime FROM users WHERE id = $1`, id).Scan(&data, &mime)
	if err == sql.ErrNoRows || (err == nil && len(data) == 0) {
		return nil, "", apperrors.NewUserNotFoundError("")
	}
	if err != nil {
		return nil, "", apperrors.NewQueryExecutionFailedError("get photo", err)
	}
	return data, mime, nil
}

// UpdateUserType changes an account's type. Moving to guest clears the
// source id because guests carry no employee or freelancer identity.
func (s *UserStore) UpdateUserType(ctx context.Context, id int64, userType string) error {
	sourceIDExpr := "source_id"
	if userType == models.UserTypeGuest {
		sourceIDExpr = "''"
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET user_type = $2, source_id = `+sourceIDExpr+`, updated_at = NOW()
		WHERE id = $1`, id, userType)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("update user type", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewUserNotFoundError("")
	}
	return nil
}

func (s *UserStore) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("record login", err)
	}
	return nil
}

func (s *UserStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("count users", err)
	}
	return n, nil
}

// RecentLogins lists accounts that signed in within the window, newest first.
func (s *UserStore) RecentLogins(ctx context.Context, since time.Time, limit int) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE last_login_at >= $1
		ORDER BY last_login_at DESC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("recent logins", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var lastLogin sql.NullTime
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.UserType,
			&u.SourceID, &u.Phone, &u.MustReset, &lastLogin, &u.CreatedAt); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("recent logins", err)
		}
		if lastLogin.Valid {
			u.LastLoginAt = &lastLogin.Time
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
