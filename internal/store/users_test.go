// internal/store/users_test.go
package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/models"
)

func newUserStoreTest(t *testing.T) (*UserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserStore(db, logger.NewTestLogger(t)), mock
}

func TestUserStoreCreate(t *testing.T) {
	store, mock := newUserStoreTest(t)

	created := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("asha@example.com", "hash", "Asha Rao", models.UserTypeFreelancer, "FL-2026-0001", "9876543210", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	u := &models.User{
		Email:        " Asha@Example.com ",
		PasswordHash: "hash",
		FullName:     "Asha Rao",
		UserType:     models.UserTypeFreelancer,
		SourceID:     "FL-2026-0001",
		Phone:        "9876543210",
	}
	require.NoError(t, store.Create(context.Background(), u))
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "asha@example.com", u.Email, "email stored lowercase")
	assert.Equal(t, created, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	store, mock := newUserStoreTest(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := store.Create(context.Background(), &models.User{
		Email:        "asha@example.com",
		PasswordHash: "hash",
		UserType:     models.UserTypeGuest,
	})
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeDuplicateEmail, stdErr.Code)
}

func TestUserStoreGetByEmail(t *testing.T) {
	store, mock := newUserStoreTest(t)

	cols := []string{"id", "email", "password_hash", "full_name", "user_type",
		"source_id", "phone", "must_reset", "last_login_at", "created_at"}
	lastLogin := time.Now().UTC().Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("asha@example.com").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(7), "asha@example.com", "hash", "Asha Rao", models.UserTypeFreelancer,
				"FL-2026-0001", "9876543210", false, lastLogin, time.Now().UTC()))

	u, err := store.GetByEmail(context.Background(), "ASHA@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, lastLogin, *u.LastLoginAt)
}

func TestUserStoreGetByEmailNotFound(t *testing.T) {
	store, mock := newUserStoreTest(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.GetByEmail(context.Background(), "missing@example.com")
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeUserNotFound, stdErr.Code)
}

func TestUserStoreUpdatePasswordNotFound(t *testing.T) {
	store, mock := newUserStoreTest(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash")).
		WithArgs("missing@example.com", "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.UpdatePassword(context.Background(), "Missing@Example.com", "newhash")
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeUserNotFound, stdErr.Code)
}

func TestUserStoreUpdateUserTypeClearsGuestSource(t *testing.T) {
	store, mock := newUserStoreTest(t)

	mock.ExpectExec(regexp.QuoteMeta("source_id = ''")).
		WithArgs(int64(7), models.UserTypeGuest).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.UpdateUserType(context.Background(), 7, models.UserTypeGuest))
	assert.NoError(t, mock.ExpectationsWereMet())
}
