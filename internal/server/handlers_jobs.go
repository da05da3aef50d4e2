// internal/server/handlers_jobs.go
package server

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/validation"
	"talenthub/internal/models"
	"talenthub/internal/resume"
)

// newJobID mints a short public identifier for a posting.
func newJobID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "JOB-" + strings.ToUpper(raw[:8])
}

// jdDescriptionLimit caps how much extracted JD text lands in the
// description column.
const jdDescriptionLimit = 5000

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req models.JobOpeningRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := s.decodeJobForm(r, &req); err != nil {
			s.errors.WriteHTTP(w, r, err)
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	if err := validation.Validate(validation.JobOpeningSchema, &req); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	job := &models.JobOpening{
		JobID:        newJobID(),
		Title:        req.Title,
		Location:     req.Location,
		BusinessArea: req.BusinessArea,
		JobType:      req.JobType,
		Description:  req.Description,
		Status:       req.Status,
	}
	if job.Status == "" {
		job.Status = models.JobStatusActive
	}
	if err := s.jobs.Create(r.Context(), job); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// decodeJobForm reads a multipart posting. An uploaded JD file fills the
// description when the form did not provide one.
func (s *Server) decodeJobForm(r *http.Request, req *models.JobOpeningRequest) error {
	maxBytes := int64(s.cfg.Uploads.MaxSizeMB) << 20
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return apperrors.NewInvalidRequestBodyError(err)
	}
	req.Title = strings.TrimSpace(r.FormValue("title"))
	req.Location = strings.TrimSpace(r.FormValue("location"))
	req.BusinessArea = r.FormValue("business_area")
	req.JobType = r.FormValue("job_type")
	req.Status = r.FormValue("status")
	req.Description = strings.TrimSpace(r.FormValue("description"))

	if req.Description != "" {
		return nil
	}
	file, header, err := r.FormFile("jd_file")
	if err != nil {
		return nil // neither description nor file; validation decides
	}
	defer file.Close()
	if !resume.IsSupportedFile(header.Filename) {
		return apperrors.NewUnsupportedFileTypeError(header.Filename)
	}
	data, err := io.ReadAll(io.LimitReader(file, maxBytes))
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	text, err := resume.ExtractText(header.Filename, data)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if len(text) > jdDescriptionLimit {
		text = text[:jdDescriptionLimit]
	}
	req.Description = text
	return nil
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")
	var req models.JobOpeningRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	if err := validation.Validate(validation.JobOpeningSchema, &req); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	job, err := s.jobs.Get(r.Context(), jobID)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	job.Title = req.Title
	job.Location = req.Location
	job.BusinessArea = req.BusinessArea
	job.JobType = req.JobType
	job.Description = req.Description
	if req.Status != "" {
		job.Status = req.Status
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.jobs.Update(r.Context(), job); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.jobs.Delete(r.Context(), r.PathValue("job_id")); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "job opening deleted"})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(r.Context(), r.PathValue("job_id"))
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		jobs []models.JobOpening
		err  error
	)
	businessArea := q.Get("business_area")
	jobType := q.Get("job_type")
	search := strings.TrimSpace(q.Get("search"))
	if businessArea != "" || jobType != "" || search != "" {
		// Filtered listings only ever surface active postings.
		jobs, err = s.jobs.Filter(r.Context(), businessArea, jobType, search)
	} else {
		skip, limit := parsePage(r)
		jobs, err = s.jobs.List(r.Context(), s.listJobsStatus(r), skip, limit)
	}
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": len(jobs),
		"jobs":  jobs,
	})
}

// listJobsStatus resolves the status predicate for the public job list.
// Anonymous and non-admin callers only ever see active postings; an admin
// may request another status, or "all" to drop the predicate entirely.
func (s *Server) listJobsStatus(r *http.Request) string {
	requested := strings.TrimSpace(r.URL.Query().Get("status"))
	if requested == "" || requested == models.JobStatusActive {
		return models.JobStatusActive
	}
	if !s.adminCaller(r) {
		return models.JobStatusActive
	}
	if requested == "all" {
		return ""
	}
	return requested
}

// ==========================================
// APPLICATIONS
// ==========================================

func (s *Server) handleApplyToJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")
	var req struct {
		ResumeID int64 `json:"resume_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	if req.ResumeID <= 0 {
		s.errors.WriteHTTP(w, r, apperrors.NewValidationError("resume_id is required"))
		return
	}

	app, err := s.applications.Apply(r.Context(), jobID, req.ResumeID)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	// A confirmation email is best-effort; the application already stands.
	if rec, rerr := s.resumes.Get(r.Context(), req.ResumeID); rerr == nil && rec.Email != "" {
		if job, jerr := s.jobs.Get(r.Context(), jobID); jerr == nil {
			if merr := s.mailer.SendApplicationReceived(r.Context(), rec.Email, job.Title); merr != nil {
				s.logger.Warn("application confirmation email failed", map[string]interface{}{
					"error": merr,
					"jobId": jobID,
				})
			}
		}
	}

	writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleListApplicants(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")
	applicants, err := s.applications.ListApplicants(r.Context(), jobID)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"job_id":     jobID,
		"total":      len(applicants),
		"applicants": applicants,
	})
}
