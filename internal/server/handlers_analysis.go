// internal/server/handlers_analysis.go
package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/jdanalysis"
	"talenthub/internal/resume"
)

// handleAnalyzeJD accepts the job description either as an uploaded file or
// as a jd_text form field, and runs the matching pipeline over it.
func (s *Server) handleAnalyzeJD(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.Uploads.MaxSizeMB) << 20
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}

	jdText := strings.TrimSpace(r.FormValue("jd_text"))
	if jdText == "" {
		file, header, err := r.FormFile("file")
		if err != nil {
			s.errors.WriteHTTP(w, r, apperrors.NewValidationError("provide jd_text or a job description file"))
			return
		}
		defer file.Close()
		if !resume.IsSupportedFile(header.Filename) {
			s.errors.WriteHTTP(w, r, apperrors.NewUnsupportedFileTypeError(header.Filename))
			return
		}
		data, err := io.ReadAll(io.LimitReader(file, maxBytes))
		if err != nil {
			s.errors.WriteHTTP(w, r, apperrors.NewInternalError(err))
			return
		}
		jdText, err = resume.ExtractText(header.Filename, data)
		if err != nil {
			s.errors.WriteHTTP(w, r, err)
			return
		}
	}

	req := &jdanalysis.AnalyzeRequest{JDText: jdText}
	if v := r.FormValue("min_score"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			s.errors.WriteHTTP(w, r, apperrors.NewValidationError("min_score must be an integer between 0 and 100"))
			return
		}
		req.MinScore = n
	}
	if v := r.FormValue("top_n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			s.errors.WriteHTTP(w, r, apperrors.NewValidationError("top_n must be an integer between 1 and 100"))
			return
		}
		req.TopN = n
	}
	if v := strings.TrimSpace(r.FormValue("user_types")); v != "" {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				req.SourceTypes = append(req.SourceTypes, t)
			}
		}
	}

	ctx := r.Context()
	if s.tracer != nil {
		var span trace.Span
		ctx, span = s.tracer.StartSpan(ctx, "jd.analyze",
			attribute.Int("jd.length", len(jdText)))
		defer span.End()
	}

	resp, err := s.analysis.Analyze(ctx, req)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalysisResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.analysis.Results(r.Context(), r.PathValue("job_id"))
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalysisHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	runs, err := s.analysis.History(r.Context(), limit)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": len(runs),
		"runs":  runs,
	})
}
