// internal/store/analysis.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/models"
)

// AnalysisStore persists completed analysis runs and the per-candidate score
// cache keyed by structure hash.
type AnalysisStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewAnalysisStore(db *sql.DB, log logger.Logger) *AnalysisStore {
	return &AnalysisStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "analysis_store"}),
	}
}

// SaveRun stores the full response of a completed analysis.
func (s *AnalysisStore) SaveRun(ctx context.Context, resp *models.AnalysisResponse) error {
	responseJSON, err := json.Marshal(resp)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	weightsJSON, err := json.Marshal(resp.Weights)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (
			job_id, jd_hash, structure_hash, engine_version, jd_role,
			weights, response, total_scanned, shortlisted, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		resp.JobID, resp.JDHash, resp.StructureHash, resp.EngineVersion, resp.JDRole,
		weightsJSON, responseJSON, resp.TotalScanned, resp.Shortlisted, resp.CreatedAt)
	if err != nil {
		return apperrors.NewDatabaseInsertFailedError(err)
	}
	s.logger.Info("analysis run saved", map[string]interface{}{
		"jobId":       resp.JobID,
		"shortlisted": resp.Shortlisted,
	})
	return nil
}

// GetRun returns the most recent stored response for a job id.
func (s *AnalysisStore) GetRun(ctx context.Context, jobID string) (*models.AnalysisResponse, error) {
	var responseJSON []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT response FROM analysis_runs
		WHERE job_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, jobID).Scan(&responseJSON)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewAnalysisNotFoundError(jobID)
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get analysis run", err)
	}
	var resp models.AnalysisResponse
	if err := json.Unmarshal(responseJSON, &resp); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &resp, nil
}

// History lists past runs, newest first.
func (s *AnalysisStore) History(ctx context.Context, limit int) ([]models.AnalysisRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_id, jd_hash, structure_hash, engine_version, jd_role, shortlisted, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("analysis history", err)
	}
	defer rows.Close()

	var runs []models.AnalysisRun
	for rows.Next() {
		var run models.AnalysisRun
		if err := rows.Scan(&run.ID, &run.JobID, &run.JDHash, &run.StructureHash,
			&run.EngineVersion, &run.JDRole, &run.ResultCount, &run.CreatedAt); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("analysis history", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetCachedResults loads previously computed scores for the structure hash,
// keyed by resume id. Results from an older engine version are skipped.
func (s *AnalysisStore) GetCachedResults(ctx context.Context, structureHash, engineVersion string) (map[int64]models.MatchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT resume_id, result FROM match_results
		WHERE structure_hash = $1 AND engine_version = $2`,
		structureHash, engineVersion)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get cached results", err)
	}
	defer rows.Close()

	cached := map[int64]models.MatchResult{}
	for rows.Next() {
		var resumeID int64
		var resultJSON []byte
		if err := rows.Scan(&resumeID, &resultJSON); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("get cached results", err)
		}
		var result models.MatchResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			continue
		}
		cached[resumeID] = result
	}
	return cached, rows.Err()
}

// SaveResult upserts one candidate score into the cache.
func (s *AnalysisStore) SaveResult(ctx context.Context, structureHash, engineVersion string, result *models.MatchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO match_results (structure_hash, resume_id, engine_version, result)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (structure_hash, resume_id)
		DO UPDATE SET engine_version = $3, result = $4, created_at = NOW()`,
		structureHash, result.ResumeID, engineVersion, resultJSON)
	if err != nil {
		return apperrors.NewDatabaseInsertFailedError(err)
	}
	return nil
}
