// internal/server/handlers_jobs_test.go
package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/common/auth"
	"talenthub/internal/common/config"
	"talenthub/internal/common/database"
	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/models"
	"talenthub/internal/store"
)

// newJobsTestServer builds a server with mocked stores and a real token
// manager, plus a valid token for the given user type.
func newJobsTestServer(t *testing.T, userType string) (*Server, sqlmock.Sqlmock, string) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewTestLogger(t)
	mr := miniredis.RunT(t)
	redis, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)

	mgr := auth.NewManager("test-secret", time.Hour, redis, log)
	s := &Server{
		cfg:    &config.Config{},
		logger: log,
		errors: apperrors.NewErrorHandler(log),
		auth:   mgr,
		users:  store.NewUserStore(db, log),
		jobs:   store.NewJobOpeningStore(db, log),
	}

	token, _, err := mgr.GenerateToken("caller@example.com", 7, userType)
	require.NoError(t, err)
	return s, mock, token
}

func expectUserLookup(mock sqlmock.Sqlmock, userType string) {
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password_hash", "full_name", "user_type",
			"source_id", "phone", "must_reset", "last_login_at", "created_at",
		}).AddRow(7, "caller@example.com", "x", "Caller", userType, "", "", false, nil, now))
}

func TestListJobsStatusAnonymous(t *testing.T) {
	s, _, _ := newJobsTestServer(t, "guest")

	tests := []struct {
		query    string
		expected string
	}{
		{"", models.JobStatusActive},
		{"?status=active", models.JobStatusActive},
		// Anonymous callers cannot widen the listing.
		{"?status=all", models.JobStatusActive},
		{"?status=inactive", models.JobStatusActive},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/jobs"+tt.query, nil)
		assert.Equal(t, tt.expected, s.listJobsStatus(r), "query=%q", tt.query)
	}
}

func TestListJobsStatusNonAdminToken(t *testing.T) {
	s, mock, token := newJobsTestServer(t, "guest")
	expectUserLookup(mock, "guest")

	r := httptest.NewRequest(http.MethodGet, "/api/jobs?status=all", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, models.JobStatusActive, s.listJobsStatus(r))
}

func TestListJobsStatusAdmin(t *testing.T) {
	s, mock, token := newJobsTestServer(t, "admin")

	expectUserLookup(mock, "admin")
	r := httptest.NewRequest(http.MethodGet, "/api/jobs?status=all", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, "", s.listJobsStatus(r), "admin status=all drops the predicate")

	expectUserLookup(mock, "admin")
	r = httptest.NewRequest(http.MethodGet, "/api/jobs?status=inactive", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, models.JobStatusInactive, s.listJobsStatus(r))
}

func TestHandleListJobsAnonymousQueriesActiveOnly(t *testing.T) {
	s, mock, _ := newJobsTestServer(t, "guest")

	// Both a bare listing and status=all from an anonymous caller must
	// reach the database as an active-only query.
	for _, query := range []string{"", "?status=all"} {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1")).
			WithArgs(models.JobStatusActive, defaultPageLimit).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "job_id", "title", "location", "business_area", "job_type",
				"description", "status", "created_at", "updated_at",
			}))

		rec := httptest.NewRecorder()
		s.handleListJobs(rec, httptest.NewRequest(http.MethodGet, "/api/jobs"+query, nil))
		assert.Equal(t, http.StatusOK, rec.Code, "query=%q", query)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleCreateJobMultipartJDFile(t *testing.T) {
	s, mock, _ := newJobsTestServer(t, "admin")
	s.cfg.Uploads = config.UploadConfig{MaxSizeMB: 5}

	jdText := strings.Repeat("x", jdDescriptionLimit+500)
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("title", "Network Engineer"))
	require.NoError(t, mw.WriteField("location", "Bangalore"))
	require.NoError(t, mw.WriteField("business_area", "technology"))
	require.NoError(t, mw.WriteField("job_type", "full_time"))
	fw, err := mw.CreateFormFile("jd_file", "jd.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte(jdText))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO job_openings")).
		WithArgs(sqlmock.AnyArg(), "Network Engineer", "Bangalore", "technology",
			"full_time", jdText[:jdDescriptionLimit], models.JobStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(1, now, now))

	r := httptest.NewRequest(http.MethodPost, "/api/jobs", body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.handleCreateJob(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParsePage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/resumes?skip=40&limit=20", nil)
	skip, limit := parsePage(r)
	assert.Equal(t, 40, skip)
	assert.Equal(t, 20, limit)

	// Defaults and malformed values.
	r = httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	skip, limit = parsePage(r)
	assert.Equal(t, 0, skip)
	assert.Equal(t, defaultPageLimit, limit)

	r = httptest.NewRequest(http.MethodGet, "/api/resumes?skip=-3&limit=zero", nil)
	skip, limit = parsePage(r)
	assert.Equal(t, 0, skip)
	assert.Equal(t, defaultPageLimit, limit)
}

func TestPageSlice(t *testing.T) {
	records := make([]models.CandidateRecord, 5)
	for i := range records {
		records[i].ID = int64(i + 1)
	}

	page := pageSlice(records, 2, 2)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].ID)
	assert.Equal(t, int64(4), page[1].ID)

	assert.Empty(t, pageSlice(records, 10, 2))
	assert.Len(t, pageSlice(records, 0, 0), 5, "zero limit means unbounded")
}
