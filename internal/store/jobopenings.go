// internal/store/jobopenings.go
package store

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/models"
)

type JobOpeningStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewJobOpeningStore(db *sql.DB, log logger.Logger) *JobOpeningStore {
	return &JobOpeningStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "job_opening_store"}),
	}
}

const jobColumns = `id, job_id, title, location, business_area, job_type, description, status, created_at, updated_at`

func scanJob(scan func(dest ...interface{}) error) (*models.JobOpening, error) {
	var j models.JobOpening
	err := scan(&j.ID, &j.JobID, &j.Title, &j.Location, &j.BusinessArea,
		&j.JobType, &j.Description, &j.Status, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (s *JobOpeningStore) Create(ctx context.Context, j *models.JobOpening) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO job_openings (job_id, title, location, business_area, job_type, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		j.JobID, j.Title, j.Location, j.BusinessArea, j.JobType, j.Description, j.Status,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return apperrors.NewDatabaseInsertFailedError(err)
	}
	s.logger.Info("job opening created", map[string]interface{}{"jobId": j.JobID})
	return nil
}

func (s *JobOpeningStore) Update(ctx context.Context, j *models.JobOpening) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE job_openings SET
			title = $2, location = $3, business_area = $4, job_type = $5,
			description = $6, status = $7, updated_at = NOW()
		WHERE job_id = $1`,
		j.JobID, j.Title, j.Location, j.BusinessArea, j.JobType, j.Description, j.Status)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("update job opening", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewJobOpeningNotFoundError(j.JobID)
	}
	return nil
}

func (s *JobOpeningStore) Delete(ctx context.Context, jobID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM job_openings WHERE job_id = $1`, jobID)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("delete job opening", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewJobOpeningNotFoundError(jobID)
	}
	return nil
}

func (s *JobOpeningStore) Get(ctx context.Context, jobID string) (*models.JobOpening, error) {
	j, err := scanJob(s.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM job_openings WHERE job_id = $1`, jobID).Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewJobOpeningNotFoundError(jobID)
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get job opening", err)
	}
	return j, nil
}

// List returns job openings newest first, optionally limited to a status.
// An empty status means no status predicate. A limit of zero or less
// returns everything; skip offsets into the ordered set.
func (s *JobOpeningStore) List(ctx context.Context, status string, skip, limit int) ([]models.JobOpening, error) {
	query := `SELECT ` + jobColumns + ` FROM job_openings`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if skip > 0 {
		args = append(args, skip)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list job openings", err)
	}
	defer rows.Close()

	var jobs []models.JobOpening
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("list job openings", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// Filter returns active openings matching the given criteria. Empty criteria
// match everything; search matches title and description case-insensitively.
func (s *JobOpeningStore) Filter(ctx context.Context, businessArea, jobType, search string) ([]models.JobOpening, error) {
	query := `SELECT ` + jobColumns + ` FROM job_openings WHERE status = 'active'`
	var args []interface{}
	if businessArea != "" {
		args = append(args, businessArea)
		query += ` AND business_area = $` + strconv.Itoa(len(args))
	}
	if jobType != "" {
		args = append(args, jobType)
		query += ` AND job_type = $` + strconv.Itoa(len(args))
	}
	if search = strings.TrimSpace(search); search != "" {
		args = append(args, "%"+search+"%")
		n := strconv.Itoa(len(args))
		query += ` AND (title ILIKE $` + n + ` OR description ILIKE $` + n + `)`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("filter job openings", err)
	}
	defer rows.Close()

	var jobs []models.JobOpening
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("filter job openings", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}
