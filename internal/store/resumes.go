// internal/store/resumes.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/models"
)

// ResumeStore persists candidate records. List fields (skills, education,
// work history) live in JSONB columns.
type ResumeStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewResumeStore(db *sql.DB, log logger.Logger) *ResumeStore {
	return &ResumeStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "resume_store"}),
	}
}

const resumeColumns = `id, file_name, first_name, last_name, full_name, email, phone,
	source_type, source_id, role, current_company, experience_years, notice_period_days,
	location, preferred_location, willing_to_relocate, skills, all_skills,
	certifications, education, work_history, uploaded_at`

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return b
}

// Insert stores a candidate record including the original file bytes. A
// record with the same email is replaced in place, so candidates re-uploading
// a resume keep a single row.
func (s *ResumeStore) Insert(ctx context.Context, rec *models.CandidateRecord) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO resumes (
			file_name, file_data, file_mime, first_name, last_name, full_name,
			email, phone, source_type, source_id, role, current_company,
			experience_years, notice_period_days, location, preferred_location,
			willing_to_relocate, skills, all_skills, certifications, education,
			work_history, raw_text
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		          $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (lower(email)) WHERE email <> '' DO UPDATE SET
			file_name = EXCLUDED.file_name,
			file_data = EXCLUDED.file_data,
			file_mime = EXCLUDED.file_mime,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			source_type = EXCLUDED.source_type,
			source_id = EXCLUDED.source_id,
			role = EXCLUDED.role,
			current_company = EXCLUDED.current_company,
			experience_years = EXCLUDED.experience_years,
			notice_period_days = EXCLUDED.notice_period_days,
			location = EXCLUDED.location,
			preferred_location = EXCLUDED.preferred_location,
			willing_to_relocate = EXCLUDED.willing_to_relocate,
			skills = EXCLUDED.skills,
			all_skills = EXCLUDED.all_skills,
			certifications = EXCLUDED.certifications,
			education = EXCLUDED.education,
			work_history = EXCLUDED.work_history,
			raw_text = EXCLUDED.raw_text,
			uploaded_at = NOW()
		RETURNING id, uploaded_at`,
		rec.FileName, rec.FileData, rec.FileMime, rec.FirstName, rec.LastName, rec.FullName,
		rec.Email, rec.Phone, rec.SourceType, rec.SourceID, rec.Role, rec.CurrentCompany,
		rec.ExperienceYears, rec.NoticePeriodDays, rec.Location, rec.PreferredLocation,
		rec.WillingToRelocate, mustJSON(rec.Skills), mustJSON(rec.AllSkills),
		mustJSON(rec.Certifications), mustJSON(rec.Education), mustJSON(rec.WorkHistory),
		rec.RawText,
	).Scan(&rec.ID, &rec.UploadedAt)
	if err != nil {
		return apperrors.NewDatabaseInsertFailedError(err)
	}
	s.logger.Info("resume stored", map[string]interface{}{
		"resumeId":   rec.ID,
		"sourceType": rec.SourceType,
	})
	return nil
}

func scanResumeRows(rows *sql.Rows) ([]models.CandidateRecord, error) {
	var records []models.CandidateRecord
	for rows.Next() {
		var rec models.CandidateRecord
		var experience sql.NullFloat64
		var notice sql.NullInt64
		var uploadedAt time.Time
		var skills, allSkills, certs, education, workHistory []byte

		err := rows.Scan(&rec.ID, &rec.FileName, &rec.FirstName, &rec.LastName, &rec.FullName,
			&rec.Email, &rec.Phone, &rec.SourceType, &rec.SourceID, &rec.Role, &rec.CurrentCompany,
			&experience, &notice, &rec.Location, &rec.PreferredLocation, &rec.WillingToRelocate,
			&skills, &allSkills, &certs, &education, &workHistory, &uploadedAt)
		if err != nil {
			return nil, err
		}
		if experience.Valid {
			v := experience.Float64
			rec.ExperienceYears = &v
		}
		if notice.Valid {
			v := int(notice.Int64)
			rec.NoticePeriodDays = &v
		}
		rec.UploadedAt = &uploadedAt
		json.Unmarshal(skills, &rec.Skills)
		json.Unmarshal(allSkills, &rec.AllSkills)
		json.Unmarshal(certs, &rec.Certifications)
		json.Unmarshal(education, &rec.Education)
		json.Unmarshal(workHistory, &rec.WorkHistory)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// List returns candidate records, newest first, without file bytes or raw
// text. A limit of zero or less returns everything; skip offsets into the
// ordered set. Filtering and sorting happen in memory in the filter package.
func (s *ResumeStore) List(ctx context.Context, skip, limit int) ([]models.CandidateRecord, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes ORDER BY uploaded_at DESC, id DESC`
	var args []interface{}
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
		return nil, apperrors.NewQueryExecutionFailedError("list resumes", err)
	}
	defer rows.Close()
	return scanResumeRows(rows)
}

// ListWithText returns candidates including extracted text, for scoring runs.
func (s *ResumeStore) ListWithText(ctx context.Context) ([]models.CandidateRecord, error) {
	records, err := s.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, raw_text FROM resumes`)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list resume text", err)
	}
	defer rows.Close()

	texts := make(map[int64]string, len(records))
	for rows.Next() {
		var id int64
		var text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("list resume text", err)
		}
		texts[id] = text
	}
	for i := range records {
		records[i].RawText = texts[records[i].ID]
	}
	return records, rows.Err()
}

func (s *ResumeStore) Get(ctx context.Context, id int64) (*models.CandidateRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get resume", err)
	}
	defer rows.Close()
	records, err := scanResumeRows(rows)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get resume", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewResumeNotFoundError(id)
	}
	return &records[0], nil
}

// GetFile returns the stored original document.
func (s *ResumeStore) GetFile(ctx context.Context, id int64) (name string, data []byte, mime string, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT file_name, file_data, file_mime FROM resumes WHERE id = $1`, id).
		Scan(&name, &data, &mime)
	if err == sql.ErrNoRows {
		return "", nil, "", apperrors.NewResumeNotFoundError(id)
	}
	if err != nil {
		return "", nil, "", apperrors.NewQueryExecutionFailedError("get resume file", err)
	}
	return name, data, mime, nil
}

// UpdateSourceType reclassifies a resume. Guest reclassification clears the
// source id.
func (s *ResumeStore) UpdateSourceType(ctx context.Context, id int64, sourceType string) error {
	sourceIDExpr := "source_id"
	if sourceType == models.SourceTypeGuest {
		sourceIDExpr = "''"
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE resumes SET source_type = $2, source_id = `+sourceIDExpr+`
		WHERE id = $1`, id, sourceType)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("update resume type", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewResumeNotFoundError(id)
	}
	return nil
}

// GetEmployeeBySourceID finds the company_employee record carrying the given
// employee id, compared case-insensitively. Used as a fallback when a type
// update arrives with a stale numeric id.
func (s *ResumeStore) GetEmployeeBySourceID(ctx context.Context, sourceID string) (*models.CandidateRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+resumeColumns+` FROM resumes
		WHERE source_type = $1 AND upper(coalesce(source_id, '')) = upper($2)`,
		models.SourceTypeCompanyEmployee, strings.TrimSpace(sourceID))
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get resume by source id", err)
	}
	defer rows.Close()
	records, err := scanResumeRows(rows)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get resume by source id", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewResumeNotFoundError(0)
	}
	return &records[0], nil
}

// DeleteMany removes the given resumes and their job applications, and
// returns how many resume rows were deleted.
func (s *ResumeStore) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM job_applications WHERE resume_id = ANY($1)`, pq.Array(ids)); err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("delete resume applications", err)
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM resumes WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("delete resumes", err)
	}
	n, _ := res.RowsAffected()
	s.logger.Info("resumes deleted", map[string]interface{}{"requested": len(ids), "deleted": n})
	return n, nil
}

// NextFreelancerSeq reserves the next per-year freelancer sequence number.
func (s *ResumeStore) NextFreelancerSeq(ctx context.Context, year int) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO freelancer_sequence (year, last_seq) VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_seq = freelancer_sequence.last_seq + 1
		RETURNING last_seq`, year).Scan(&seq)
	if err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("next freelancer sequence", err)
	}
	return seq, nil
}

// RecentUploads lists resumes uploaded within the window, newest first.
func (s *ResumeStore) RecentUploads(ctx context.Context, since time.Time, limit int) ([]models.CandidateRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+resumeColumns+` FROM resumes
		WHERE uploaded_at >= $1
		ORDER BY uploaded_at DESC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("recent uploads", err)
	}
	defer rows.Close()
	return scanResumeRows(rows)
}

// CountBySourceType returns upload totals grouped by source.
func (s *ResumeStore) CountBySourceType(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_type, COUNT(*) FROM resumes GROUP BY source_type`)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("count by source type", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var sourceType string
		var n int
		if err := rows.Scan(&sourceType, &n); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("count by source type", err)
		}
		counts[sourceType] = n
	}
	return counts, rows.Err()
}
