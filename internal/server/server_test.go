// internal/server/server_test.go
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/common/config"
	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"BEARER abc123", "abc123"},
		{"Bearer  abc123", "abc123"},
		{"Basic dXNlcjpwYXNz", ""},
		{"abc123", ""},
		{"", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.expected, bearerToken(r), "header=%q", tt.header)
	}
}

func TestPathID(t *testing.T) {
	mux := http.NewServeMux()
	var got int64
	var gotErr error
	mux.HandleFunc("GET /api/resumes/{resume_id}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = pathID(r, "resume_id")
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/resumes/42", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, int64(42), got)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/resumes/abc", nil))
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, gotErr, &stdErr)
	assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/resumes/0", nil))
	require.ErrorAs(t, gotErr, &stdErr)
}

func TestParseFilters(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet,
		"/api/resumes?search=bgp&user_type=freelancer&location=bangalore&min_experience=3&max_notice=30", nil)
	f := parseFilters(r)
	assert.Equal(t, "bgp", f.Search)
	assert.Equal(t, "freelancer", f.UserType)
	assert.Equal(t, "bangalore", f.Location)
	require.NotNil(t, f.MinExperience)
	assert.Equal(t, 3.0, *f.MinExperience)
	assert.Nil(t, f.MaxExperience)
	require.NotNil(t, f.MaxNotice)
	assert.Equal(t, 30, *f.MaxNotice)

	// malformed numbers are ignored rather than rejected
	r = httptest.NewRequest(http.MethodGet, "/api/resumes?min_experience=lots", nil)
	assert.Nil(t, parseFilters(r).MinExperience)
}

func TestHandleHealth(t *testing.T) {
	log := logger.NewTestLogger(t)
	s := &Server{
		cfg: &config.Config{
			App: config.AppConfig{Name: "talenthub", Version: "1.4.0"},
		},
		logger: log,
		errors: apperrors.NewErrorHandler(log),
	}

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "talenthub", body["service"])
	assert.Equal(t, "1.4.0", body["version"])
}
