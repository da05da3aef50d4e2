// internal/server/handlers_resumes_test.go
package server

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/common/config"
	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/models"
	"talenthub/internal/store"
)

var resumeTestColumns = []string{
	"id", "file_name", "first_name", "last_name", "full_name", "email", "phone",
	"source_type", "source_id", "role", "current_company", "experience_years",
	"notice_period_days", "location", "preferred_location", "willing_to_relocate",
	"skills", "all_skills", "certifications", "education", "work_history", "uploaded_at",
}

func newResumesTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewTestLogger(t)
	return &Server{
		cfg:     &config.Config{},
		logger:  log,
		errors:  apperrors.NewErrorHandler(log),
		resumes: store.NewResumeStore(db, log),
	}, mock
}

func patchResumeType(t *testing.T, s *Server, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/resumes/{id}/type", s.handleUpdateResumeType)
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPatch, "/api/resumes/"+id+"/type", strings.NewReader(body))
	mux.ServeHTTP(rec, r)
	return rec
}

func TestHandleUpdateResumeTypeFallsBackToEmployeeID(t *testing.T) {
	s, mock := newResumesTestServer(t)

	// The numeric id misses, so the employee id locates the record instead.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE resumes")).
		WithArgs(int64(999), models.SourceTypeCompanyEmployee).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("upper(coalesce(source_id, '')) = upper($2)")).
		WithArgs(models.SourceTypeCompanyEmployee, "emp042").
		WillReturnRows(sqlmock.NewRows(resumeTestColumns).
			AddRow(4, "r.pdf", "Asha", "Rao", "Asha Rao", "asha@example.com", "",
				models.SourceTypeCompanyEmployee, "EMP042", "", "", nil, nil, "", "", false,
				[]byte(`[]`), []byte(`[]`), []byte(`[]`), []byte(`[]`), []byte(`[]`), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE resumes")).
		WithArgs(int64(4), models.SourceTypeCompanyEmployee).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := patchResumeType(t, s, "999",
		`{"source_type": "company employee", "source_id": "emp042"}`)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleUpdateResumeTypeNotFoundWithoutSourceID(t *testing.T) {
	s, mock := newResumesTestServer(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE resumes")).
		WithArgs(int64(999), models.SourceTypeGuest).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := patchResumeType(t, s, "999", `{"source_type": "guest"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleUpdateResumeTypeCanonicalizesGmail(t *testing.T) {
	s, mock := newResumesTestServer(t)

	// gmail is a guest synonym; the stored type and the cleared source_id
	// both follow the guest rules.
	mock.ExpectExec(regexp.QuoteMeta("source_id = ''")).
		WithArgs(int64(4), models.SourceTypeGuest).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := patchResumeType(t, s, "4", `{"source_type": "gmail"}`)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleUpdateResumeTypeRejectsUnknown(t *testing.T) {
	s, mock := newResumesTestServer(t)

	rec := patchResumeType(t, s, "4", `{"source_type": "outlook"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query for a rejected type")
}
