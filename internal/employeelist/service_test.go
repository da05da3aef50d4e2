// internal/employeelist/service_test.go
package employeelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "talenthub/internal/common/errors"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Employee ID", "employee_id"},
		{"emp_no", "employee_id"},
		{"EMPLOYEE_NUMBER", "employee_id"},
		{"Emp Id", "employee_id"},
		{"E-Mail", "email"},
		{"email_address", "email"},
		{"Email", "email"},
		{"Full Name", "full_name"},
		{"Name", "full_name"},
		{"\uFEFFemployee_id", "employee_id"}, // BOM stripped
		{"Department", "department"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeHeader(tt.in), "header %q", tt.in)
	}
}

func TestParseFileCSV(t *testing.T) {
	csv := "Emp No,Full Name,E-Mail\n" +
		"e101,Asha Rao,Asha.Rao@Example.com\n" +
		"E102,Vikram Shah,vikram@example.com\n"

	employees, err := ParseFile("roster.csv", []byte(csv))
	require.NoError(t, err)
	require.Len(t, employees, 2)

	// IDs normalize uppercase, emails lowercase.
	assert.Equal(t, "E101", employees[0].EmployeeID)
	assert.Equal(t, "asha.rao@example.com", employees[0].Email)
	assert.Equal(t, "Asha Rao", employees[0].FullName)
}

func TestParseFileSkipsIncompleteRows(t *testing.T) {
	csv := "employee_id,full_name,email\n" +
		"E101,Asha Rao,asha@example.com\n" +
		",Missing Id,missing@example.com\n" +
		"E103,Missing Email,\n"

	employees, err := ParseFile("roster.csv", []byte(csv))
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "E101", employees[0].EmployeeID)
}

func TestParseFileDuplicateIDFailsUpload(t *testing.T) {
	csv := "employee_id,email\n" +
		"E101,a@example.com\n" +
		"e101,b@example.com\n"

	_, err := ParseFile("roster.csv", []byte(csv))
	require.Error(t, err)
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Contains(t, stdErr.Details, "duplicate employee_id")
}

func TestParseFileMissingRequiredColumns(t *testing.T) {
	_, err := ParseFile("roster.csv", []byte("full_name,department\nAsha,Networks\n"))
	require.Error(t, err)
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Contains(t, stdErr.Details, "employee_id")
}

func TestParseFileEmpty(t *testing.T) {
	_, err := ParseFile("roster.csv", nil)
	assert.Error(t, err)
}

func TestParseFileUnsupportedExtension(t *testing.T) {
	_, err := ParseFile("roster.pdf", []byte("whatever"))
	assert.Error(t, err)
}
