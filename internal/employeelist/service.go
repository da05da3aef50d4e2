// internal/employeelist/service.go
package employeelist

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/models"
	"talenthub/internal/store"
)

// Service maintains the company employee roster used to verify
// company_employee signups. Uploading a new roster file always replaces the
// existing list.
type Service struct {
	employees *store.EmployeeStore
	logger    logger.Logger
}

func NewService(employees *store.EmployeeStore, log logger.Logger) *Service {
	return &Service{
		employees: employees,
		logger:    log.WithFields(map[string]interface{}{"component": "employee_list"}),
	}
}

// Replace parses an uploaded roster file and swaps the stored list.
// Returns the number of employees loaded.
func (s *Service) Replace(ctx context.Context, filename string, data []byte) (int, error) {
	employees, err := ParseFile(filename, data)
	if err != nil {
		return 0, err
	}
	if err := s.employees.ReplaceAll(ctx, employees); err != nil {
		return 0, err
	}
	s.logger.Info("employee roster replaced", map[string]interface{}{
		"fileName": filename,
		"count":    len(employees),
	})
	return len(employees), nil
}

// SetVerificationEnabled toggles signup verification against the roster.
func (s *Service) SetVerificationEnabled(ctx context.Context, enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	return s.employees.SetConfig(ctx, models.AppConfigEmployeeVerification, value)
}

// ==========================================
// FILE PARSING
// ==========================================

// normalizeHeader maps the header spellings seen in real roster exports onto
// the three canonical columns.
func normalizeHeader(name string) string {
	s := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
	if s == "full name" {
		return "full_name"
	}
	s = strings.ReplaceAll(s, " ", "_")
	switch s {
	case "emp_no", "employee_no", "employee_number", "emp_id":
		return "employee_id"
	case "e-mail", "e_mail", "email_address":
		return "email"
	case "name":
		return "full_name"
	}
	return s
}

// ParseFile reads a CSV or Excel roster. The file must carry employee_id and
// email columns (under any recognized header spelling); rows missing either
// value are skipped and a duplicate employee id fails the whole upload.
func ParseFile(filename string, data []byte) ([]models.CompanyEmployee, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return parseRows(csvRows(data))
	case ".xlsx", ".xls":
		rows, err := excelRows(data)
		if err != nil {
			return nil, err
		}
		return parseRows(rows, nil)
	default:
		return nil, apperrors.NewUnsupportedFileTypeError(ext)
	}
}

func csvRows(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParseFailedError("employee list", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func excelRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewParseFailedError("employee list", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParseFailedError("employee list", fmt.Errorf("workbook has no sheets"))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParseFailedError("employee list", err)
	}
	return rows, nil
}

func parseRows(rows [][]string, rowsErr error) ([]models.CompanyEmployee, error) {
	if rowsErr != nil {
		return nil, rowsErr
	}
	if len(rows) == 0 {
		return nil, apperrors.NewValidationError("employee list file is empty")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = normalizeHeader(h)
	}
	col := map[string]int{}
	for i, h := range headers {
		if _, ok := col[h]; !ok {
			col[h] = i
		}
	}
	if _, ok := col["employee_id"]; !ok {
		return nil, apperrors.NewValidationError("file must have columns: employee_id, full_name (or full name), email")
	}
	if _, ok := col["email"]; !ok {
		return nil, apperrors.NewValidationError("file must have columns: employee_id, full_name (or full name), email")
	}

	cell := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	seen := map[string]bool{}
	var employees []models.CompanyEmployee
	for _, row := range rows[1:] {
		id := cell(row, "employee_id")
		email := cell(row, "email")
		if id == "" || email == "" {
			continue
		}
		key := strings.ToUpper(id)
		if seen[key] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("duplicate employee_id: %s", id))
		}
		seen[key] = true
		employees = append(employees, models.CompanyEmployee{
			EmployeeID: key,
			Email:      strings.ToLower(email),
			FullName:   cell(row, "full_name"),
		})
	}
	return employees, nil
}
