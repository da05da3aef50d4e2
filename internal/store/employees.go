// internal/store/employees.go
package store

import (
	"context"
	"database/sql"
	"strings"

	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/models"
)

// EmployeeStore holds the company employee roster used for signup
// verification, plus the app_config flags that control it.
type EmployeeStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewEmployeeStore(db *sql.DB, log logger.Logger) *EmployeeStore {
	return &EmployeeStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "employee_store"}),
	}
}

// ReplaceAll swaps the entire roster in one transaction. An uploaded list
// always replaces the previous one completely.
func (s *EmployeeStore) ReplaceAll(ctx context.Context, employees []models.CompanyEmployee) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("replace employee list", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM company_employee_list`); err != nil {
		return apperrors.NewQueryExecutionFailedError("replace employee list", err)
	}
	for _, emp := range employees {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO company_employee_list (employee_id, email, full_name)
			VALUES ($1, $2, $3)`,
			strings.ToUpper(strings.TrimSpace(emp.EmployeeID)),
			strings.ToLower(strings.TrimSpace(emp.Email)),
			strings.TrimSpace(emp.FullName))
		if err != nil {
			return apperrors.NewDatabaseInsertFailedError(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewQueryExecutionFailedError("replace employee list", err)
	}
	s.logger.Info("employee list replaced", map[string]interface{}{"count": len(employees)})
	return nil
}

// Verify checks an employee id against the roster. When the roster also has
// an email for the id, the email must match too.
func (s *EmployeeStore) Verify(ctx context.Context, employeeID, email string) (bool, error) {
	var rosterEmail string
	err := s.db.QueryRowContext(ctx,
		`SELECT email FROM company_employee_list WHERE employee_id = $1`,
		strings.ToUpper(strings.TrimSpace(employeeID))).Scan(&rosterEmail)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewQueryExecutionFailedError("verify employee", err)
	}
	if rosterEmail != "" && !strings.EqualFold(rosterEmail, strings.TrimSpace(email)) {
		return false, nil
	}
	return true, nil
}

func (s *EmployeeStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM company_employee_list`).Scan(&n)
	if err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("count employees", err)
	}
	return n, nil
}

// GetConfig reads an app_config value, returning the fallback when unset.
func (s *EmployeeStore) GetConfig(ctx context.Context, key, fallback string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM app_config WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return "", apperrors.NewQueryExecutionFailedError("get config", err)
	}
	return value, nil
}

func (s *EmployeeStore) SetConfig(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_config (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("set config", err)
	}
	return nil
}

// VerificationEnabled reports whether employee signup verification is on.
// It defaults to enabled when the flag has never been set.
func (s *EmployeeStore) VerificationEnabled(ctx context.Context) (bool, error) {
	value, err := s.GetConfig(ctx, models.AppConfigEmployeeVerification, "true")
	if err != nil {
		return false, err
	}
	return value == "true", nil
}
