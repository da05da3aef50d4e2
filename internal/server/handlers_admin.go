// internal/server/handlers_admin.go
package server

import (
	"io"
	"net/http"
	"strconv"

	apperrors "talenthub/internal/common/errors"
)

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.admin.Stats(r.Context(), r.URL.Query().Get("user_type"))
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAdminNotifications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 50
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	days := 7
	if v := q.Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	feed, err := s.admin.Notifications(r.Context(), limit, days)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

// ==========================================
// EMPLOYEE ROSTER
// ==========================================

func (s *Server) handleUploadEmployeeList(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.Uploads.MaxSizeMB) << 20
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewValidationError("file field is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes))
	if err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInternalError(err))
		return
	}
	count, err := s.employeeList.Replace(r.Context(), header.Filename, data)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"detail":    "employee list replaced",
		"employees": count,
	})
}

func (s *Server) handleSetEmployeeVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	if req.Enabled == nil {
		s.errors.WriteHTTP(w, r, apperrors.NewValidationError("enabled is required"))
		return
	}
	if err := s.employeeList.SetVerificationEnabled(r.Context(), *req.Enabled); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"employee_verification_enabled": *req.Enabled})
}

func (s *Server) handleGetEmployeeVerification(w http.ResponseWriter, r *http.Request) {
	enabled, err := s.employees.VerificationEnabled(r.Context())
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	count, err := s.employees.Count(r.Context())
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"employee_verification_enabled": enabled,
		"employees":                     count,
	})
}
