// internal/server/handlers_resumes.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"talenthub/internal/autofill"
	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/metrics"
	"talenthub/internal/filter"
	"talenthub/internal/models"
	"talenthub/internal/resume"
)

// adminAssignableTypes restricts what an admin may re-label a resume as.
// Inputs are canonicalized first, so synonyms like "gmail" land on guest.
var adminAssignableTypes = map[string]bool{
	models.SourceTypeCompanyEmployee: true,
	models.SourceTypeFreelancer:      true,
	models.SourceTypeGuest:           true,
	models.SourceTypeAdmin:           true,
}

// readUploadedFile pulls the uploaded file out of a multipart request and
// enforces the configured size ceiling.
func (s *Server) readUploadedFile(r *http.Request) (string, []byte, error) {
	maxBytes := int64(s.cfg.Uploads.MaxSizeMB) << 20
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return "", nil, apperrors.NewInvalidRequestBodyError(err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, apperrors.NewValidationError("file field is required")
	}
	defer file.Close()

	if header.Size > maxBytes {
		return "", nil, apperrors.NewFileTooLargeError(s.cfg.Uploads.MaxSizeMB)
	}
	if !resume.IsSupportedFile(header.Filename) {
		return "", nil, apperrors.NewUnsupportedFileTypeError(header.Filename)
	}
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}
	if int64(len(data)) > maxBytes {
		return "", nil, apperrors.NewFileTooLargeError(s.cfg.Uploads.MaxSizeMB)
	}
	return header.Filename, data, nil
}

// ==========================================
// UPLOAD AND PARSE
// ==========================================

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.readUploadedFile(r)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	text, err := resume.ExtractText(filename, data)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	rec := s.parser.ParseCandidate(text)
	rec.FileName = filename
	rec.FileData = data
	rec.FileMime = resume.MimeForFile(filename)
	rec.SourceType = resume.MapSourceType(r.FormValue("source_type"))

	// Form fields override whatever the parser found.
	overrideString(r, "name", &rec.FullName)
	overrideString(r, "email", &rec.Email)
	overrideString(r, "phone", &rec.Phone)
	overrideString(r, "role", &rec.Role)
	overrideString(r, "location", &rec.Location)
	overrideString(r, "preferred_location", &rec.PreferredLocation)
	if v := r.FormValue("willing_to_relocate"); v != "" {
		rec.WillingToRelocate = v == "true" || v == "1" || strings.EqualFold(v, "yes")
	}
	if v := r.FormValue("experience_years"); v != "" {
		if years, perr := strconv.ParseFloat(v, 64); perr == nil {
			rec.ExperienceYears = &years
		}
	}
	if v := r.FormValue("notice_period"); v != "" {
		if days, perr := strconv.Atoi(v); perr == nil {
			rec.NoticePeriodDays = &days
		}
	}

	claims := ClaimsFrom(r.Context())
	if claims != nil {
		if user, uerr := s.users.GetByID(r.Context(), claims.UserID); uerr == nil {
			if rec.Email == "" {
				rec.Email = user.Email
			}
			if rec.SourceType == models.SourceTypeGuest && user.UserType != models.UserTypeGuest {
				rec.SourceType = resume.MapSourceType(user.UserType)
			}
			rec.SourceID = user.SourceID
		}
	}

	if err := s.resumes.Insert(r.Context(), &rec); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	s.index.Index(r.Context(), &rec)
	metrics.ResumeUploadsTotal.WithLabelValues(rec.SourceType).Inc()

	s.logger.Info("resume ingested", map[string]interface{}{
		"resumeId":   rec.ID,
		"sourceType": rec.SourceType,
		"fileName":   filename,
	})
	writeJSON(w, http.StatusCreated, rec)
}

func overrideString(r *http.Request, field string, dst *string) {
	if v := strings.TrimSpace(r.FormValue(field)); v != "" {
		*dst = v
	}
}

// handleParseResume extracts and parses a resume without persisting it, then
// merges the result into the caller's application form.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.readUploadedFile(r)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	text, err := resume.ExtractText(filename, data)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	parsed := s.parser.Parse(text)

	var form autofill.ApplicationForm
	if raw := r.FormValue("form"); raw != "" {
		if jerr := json.Unmarshal([]byte(raw), &form); jerr != nil {
			s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(jerr))
			return
		}
	}
	merged, filled := autofill.Reconcile(form, parsed)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"parsed":            parsed,
		"form":              merged,
		"autofilled_fields": filled,
	})
}

// ==========================================
// LISTING AND SEARCH
// ==========================================

func parseFilters(r *http.Request) filter.Filters {
	q := r.URL.Query()
	f := filter.Filters{
		Search:   strings.TrimSpace(q.Get("search")),
		UserType: q.Get("user_type"),
		Location: q.Get("location"),
	}
	if v := q.Get("min_experience"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinExperience = &n
		}
	}
	if v := q.Get("max_experience"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxExperience = &n
		}
	}
	if v := q.Get("min_notice"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MinNotice = &n
		}
	}
	if v := q.Get("max_notice"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MaxNotice = &n
		}
	}
	return f
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	f := parseFilters(r)
	skip, limit := parsePage(r)
	sortKey := r.URL.Query().Get("sort")

	// A plain paged listing pushes LIMIT/OFFSET into the query. Any filter
	// or explicit sort narrows in memory first, so paging happens after.
	if f == (filter.Filters{}) && sortKey == "" {
		records, err := s.resumes.List(r.Context(), skip, limit)
		if err != nil {
			s.errors.WriteHTTP(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"total":   len(records),
			"resumes": records,
		})
		return
	}

	records, err := s.resumes.List(r.Context(), 0, 0)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	// Free-text search goes through Elasticsearch when it is wired up;
	// otherwise the in-memory matcher covers it.
	if f.Search != "" && s.index.Enabled() {
		ids, serr := s.index.Search(r.Context(), f.Search, 200)
		if serr == nil {
			records = pickByID(records, ids)
			f.Search = ""
		} else {
			s.logger.Warn("search index unavailable, falling back to scan", map[string]interface{}{
				"error": serr,
			})
		}
	}

	records = filter.Apply(records, f)
	records = filter.Sort(records, sortKey)

	total := len(records)
	records = pageSlice(records, skip, limit)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":   total,
		"resumes": records,
	})
}

// pageSlice applies skip/limit to an already filtered slice.
func pageSlice(records []models.CandidateRecord, skip, limit int) []models.CandidateRecord {
	if skip >= len(records) {
		return []models.CandidateRecord{}
	}
	records = records[skip:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

// pickByID keeps only the records whose IDs appear in ids, preserving the
// relevance order the index returned.
func pickByID(records []models.CandidateRecord, ids []int64) []models.CandidateRecord {
	byID := make(map[int64]models.CandidateRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	out := make([]models.CandidateRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	rec, err := s.resumes.Get(r.Context(), id)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	name, data, mime, err := s.resumes.GetFile(r.Context(), id)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	if mime == "" {
		mime = resume.MimeForFile(name)
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ==========================================
// ADMIN OPERATIONS
// ==========================================

func (s *Server) handleUpdateResumeType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	var req struct {
		SourceType string `json:"source_type"`
		SourceID   string `json:"source_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	canonical := filter.CanonicalType(req.SourceType)
	if !adminAssignableTypes[canonical] {
		s.errors.WriteHTTP(w, r, apperrors.NewValidationError(
			"source_type must be one of: company_employee, freelancer, guest, admin"))
		return
	}
	err = s.resumes.UpdateSourceType(r.Context(), id, canonical)
	if err != nil && strings.TrimSpace(req.SourceID) != "" {
		// Clients sometimes hold a stale numeric id for employees. Fall back
		// to the company_employee record carrying the given employee id.
		var stdErr *apperrors.StandardError
		if errors.As(err, &stdErr) && stdErr.Code == apperrors.ErrCodeResumeNotFound {
			if rec, lerr := s.resumes.GetEmployeeBySourceID(r.Context(), req.SourceID); lerr == nil {
				err = s.resumes.UpdateSourceType(r.Context(), rec.ID, canonical)
			}
		}
	}
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "source type updated"})
}

// handleDeleteResumes removes a batch of records and drops them from the
// search index.
func (s *Server) handleDeleteResumes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	if len(req.IDs) == 0 {
		s.errors.WriteHTTP(w, r, apperrors.NewValidationError("ids must not be empty"))
		return
	}
	deleted, err := s.resumes.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	for _, id := range req.IDs {
		s.index.Delete(r.Context(), id)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": deleted})
}

func (s *Server) handleOutlookSync(w http.ResponseWriter, r *http.Request) {
	if s.outlook == nil {
		s.errors.WriteHTTP(w, r, apperrors.NewValidationError("outlook integration is not configured"))
		return
	}
	result, err := s.outlook.Sync(r.Context())
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("invalid %s: %q", name, raw))
	}
	return id, nil
}

// parsePage reads skip/limit pagination params. Malformed or negative
// values fall back to the defaults: no offset, pages of 100.
func parsePage(r *http.Request) (skip, limit int) {
	skip, limit = 0, defaultPageLimit
	q := r.URL.Query()
	if v := q.Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return skip, limit
}

const defaultPageLimit = 100
