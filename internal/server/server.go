// internal/server/server.go
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"talenthub/internal/admin"
	"talenthub/internal/common/auth"
	"talenthub/internal/common/config"
	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/common/mailer"
	"talenthub/internal/common/observability"
	"talenthub/internal/employeelist"
	"talenthub/internal/jdanalysis"
	"talenthub/internal/outlook"
	"talenthub/internal/resume"
	"talenthub/internal/search"
	"talenthub/internal/store"
)

// ==========================================
// SERVER
// ==========================================

// Server wires the HTTP surface to the stores and domain services.
type Server struct {
	cfg    *config.Config
	logger logger.Logger
	errors *apperrors.ErrorHandler
	obs    *observability.Observability
	tracer *observability.Tracer

	auth   *auth.Manager
	google *auth.GoogleVerifier
	mailer *mailer.Mailer

	users        *store.UserStore
	resumes      *store.ResumeStore
	jobs         *store.JobOpeningStore
	applications *store.ApplicationStore
	employees    *store.EmployeeStore
	resetTokens  *store.ResetTokenStore

	parser       *resume.Parser
	index        *search.ResumeIndex
	analysis     *jdanalysis.Service
	employeeList *employeelist.Service
	admin        *admin.Service
	outlook      *outlook.Service // nil when the integration is disabled
}

// Deps bundles everything the server needs. Optional integrations may be nil.
type Deps struct {
	Config *config.Config
	Logger logger.Logger
	Obs    *observability.Observability
	Tracer *observability.Tracer

	Auth   *auth.Manager
	Google *auth.GoogleVerifier
	Mailer *mailer.Mailer

	Users        *store.UserStore
	Resumes      *store.ResumeStore
	Jobs         *store.JobOpeningStore
	Applications *store.ApplicationStore
	Employees    *store.EmployeeStore
	ResetTokens  *store.ResetTokenStore

	Parser       *resume.Parser
	Index        *search.ResumeIndex
	Analysis     *jdanalysis.Service
	EmployeeList *employeelist.Service
	Admin        *admin.Service
	Outlook      *outlook.Service
}

func NewServer(d Deps) *Server {
	log := d.Logger.WithFields(map[string]interface{}{"component": "http_server"})
	return &Server{
		cfg:          d.Config,
		logger:       log,
		errors:       apperrors.NewErrorHandler(log),
		obs:          d.Obs,
		tracer:       d.Tracer,
		auth:         d.Auth,
		google:       d.Google,
		mailer:       d.Mailer,
		users:        d.Users,
		resumes:      d.Resumes,
		jobs:         d.Jobs,
		applications: d.Applications,
		employees:    d.Employees,
		resetTokens:  d.ResetTokens,
		parser:       d.Parser,
		index:        d.Index,
		analysis:     d.Analysis,
		employeeList: d.EmployeeList,
		admin:        d.Admin,
		outlook:      d.Outlook,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, s.withObservability(pattern, h))
	}

	// Public
	route("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	route("POST /api/auth/signup", s.handleSignup)
	route("POST /api/auth/login", s.handleLogin)
	route("POST /api/auth/google", s.handleGoogleLogin)
	route("POST /api/auth/forgot-password", s.handleForgotPassword)
	route("POST /api/auth/verify-reset-code", s.handleVerifyResetCode)
	route("POST /api/auth/reset-password", s.handleResetPassword)

	route("GET /api/jobs", s.handleListJobs)
	route("GET /api/jobs/{job_id}", s.handleGetJob)

	// parse is public so the guest application form can autofill pre-signup
	route("POST /api/resumes/parse", s.handleParseResume)

	// Authenticated
	route("POST /api/auth/logout", s.requireAuth(s.handleLogout))
	route("GET /api/profile", s.requireAuth(s.handleGetProfile))
	route("PATCH /api/profile", s.requireAuth(s.handleUpdateProfile))
	route("POST /api/profile/photo", s.requireAuth(s.handleUploadPhoto))
	route("GET /api/profile/photo", s.requireAuth(s.handleGetPhoto))

	route("POST /api/resumes/upload", s.requireAuth(s.handleUploadResume))
	route("POST /api/jobs/{job_id}/apply", s.requireAuth(s.handleApplyToJob))

	// Recruiting staff
	route("GET /api/resumes", s.requireAdmin(s.handleListResumes))
	route("GET /api/resumes/{id}", s.requireAdmin(s.handleGetResume))
	route("GET /api/resumes/{id}/file", s.requireAdmin(s.handleDownloadResume))
	route("PATCH /api/resumes/{id}/type", s.requireAdmin(s.handleUpdateResumeType))
	route("DELETE /api/resumes", s.requireAdmin(s.handleDeleteResumes))
	route("GET /api/jobs/{job_id}/applicants", s.requireAdmin(s.handleListApplicants))

	route("POST /api/jobs", s.requireAdmin(s.handleCreateJob))
	route("PUT /api/jobs/{job_id}", s.requireAdmin(s.handleUpdateJob))
	route("DELETE /api/jobs/{job_id}", s.requireAdmin(s.handleDeleteJob))

	route("POST /api/jd/analyze-v2", s.requireAdmin(s.handleAnalyzeJD))
	route("GET /api/jd/results/{job_id}", s.requireAdmin(s.handleAnalysisResults))
	route("GET /api/jd/history", s.requireAdmin(s.handleAnalysisHistory))

	route("GET /api/admin/stats", s.requireAdmin(s.handleAdminStats))
	route("GET /api/admin/notifications", s.requireAdmin(s.handleAdminNotifications))
	route("POST /api/admin/invite", s.requireAdmin(s.handleInviteUser))
	route("POST /api/admin/employee-list", s.requireAdmin(s.handleUploadEmployeeList))
	route("GET /api/admin/employee-verification", s.requireAdmin(s.handleGetEmployeeVerification))
	route("PUT /api/admin/employee-verification", s.requireAdmin(s.handleSetEmployeeVerification))
	route("POST /api/admin/outlook/sync", s.requireAdmin(s.handleOutlookSync))

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.cfg.App.Name,
		"version": s.cfg.App.Version,
	})
}
