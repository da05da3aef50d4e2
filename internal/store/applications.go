// internal/store/applications.go
package store

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/models"
)

type ApplicationStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewApplicationStore(db *sql.DB, log logger.Logger) *ApplicationStore {
	return &ApplicationStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "application_store"}),
	}
}

// Apply records a candidate applying to an opening. A second application to
// the same opening returns DUPLICATE_APPLICATION.
func (s *ApplicationStore) Apply(ctx context.Context, jobID string, resumeID int64) (*models.JobApplication, error) {
	app := &models.JobApplication{JobID: jobID, ResumeID: resumeID}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO job_applications (job_id, resume_id)
		VALUES ($1, $2)
		RETURNING id, applied_at`,
		jobID, resumeID).Scan(&app.ID, &app.AppliedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return nil, apperrors.NewDuplicateApplicationError(jobID, resumeID)
			case "23503":
				return nil, apperrors.NewJobOpeningNotFoundError(jobID)
			}
		}
		return nil, apperrors.NewDatabaseInsertFailedError(err)
	}
	s.logger.Info("application recorded", map[string]interface{}{
		"jobId":    jobID,
		"resumeId": resumeID,
	})
	return app, nil
}

// ListApplicants returns the candidates who applied to an opening, most
// recent application first.
func (s *ApplicationStore) ListApplicants(ctx context.Context, jobID string) ([]models.Applicant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.job_id, a.resume_id, a.applied_at,
		       r.full_name, r.email, r.phone, r.role, r.experience_years, r.location
		FROM job_applications a
		JOIN resumes r ON r.id = a.resume_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC`, jobID)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list applicants", err)
	}
	defer rows.Close()

	var applicants []models.Applicant
	for rows.Next() {
		var app models.Applicant
		var experience sql.NullFloat64
		err := rows.Scan(&app.Application.ID, &app.Application.JobID, &app.Application.ResumeID,
			&app.Application.AppliedAt, &app.Candidate.FullName, &app.Candidate.Email,
			&app.Candidate.Phone, &app.Candidate.Role, &experience, &app.Candidate.Location)
		if err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("list applicants", err)
		}
		app.Candidate.ID = app.Application.ResumeID
		if experience.Valid {
			v := experience.Float64
			app.Candidate.ExperienceYears = &v
		}
		applicants = append(applicants, app)
	}
	return applicants, rows.Err()
}

// CountByJob returns applicant totals per opening.
func (s *ApplicationStore) CountByJob(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT job_id, COUNT(*) FROM job_applications GROUP BY job_id`)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("count applications", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var jobID string
		var n int
		if err := rows.Scan(&jobID, &n); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("count applications", err)
		}
		counts[jobID] = n
	}
	return counts, rows.Err()
}
