// internal/store/schema.go
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the tables the service needs. They are idempotent
// so startup can run them on every boot.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		full_name TEXT NOT NULL DEFAULT '',
		user_type TEXT NOT NULL DEFAULT 'guest',
		source_id TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		photo_data BYTEA,
		photo_mime TEXT NOT NULL DEFAULT '',
		must_reset BOOLEAN NOT NULL DEFAULT FALSE,
		last_login_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS resumes (
		id BIGSERIAL PRIMARY KEY,
		file_name TEXT NOT NULL DEFAULT '',
		file_data BYTEA,
		file_mime TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		full_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		source_type TEXT NOT NULL DEFAULT 'guest',
		source_id TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT '',
		current_company TEXT NOT NULL DEFAULT '',
		experience_years DOUBLE PRECISION,
		notice_period_days INTEGER,
		location TEXT NOT NULL DEFAULT '',
		preferred_location TEXT NOT NULL DEFAULT '',
		willing_to_relocate BOOLEAN NOT NULL DEFAULT FALSE,
		skills JSONB NOT NULL DEFAULT '[]',
		all_skills JSONB NOT NULL DEFAULT '[]',
		certifications JSONB NOT NULL DEFAULT '[]',
		education JSONB NOT NULL DEFAULT '[]',
		work_history JSONB NOT NULL DEFAULT '[]',
		raw_text TEXT NOT NULL DEFAULT '',
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_resumes_source_type ON resumes (source_type)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_resumes_email ON resumes (lower(email)) WHERE email <> ''`,
	`CREATE TABLE IF NOT EXISTS job_openings (
		id BIGSERIAL PRIMARY KEY,
		job_id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		business_area TEXT NOT NULL DEFAULT '',
		job_type TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS job_applications (
		id BIGSERIAL PRIMARY KEY,
		job_id TEXT NOT NULL REFERENCES job_openings (job_id) ON DELETE CASCADE,
		resume_id BIGINT NOT NULL REFERENCES resumes (id) ON DELETE CASCADE,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (job_id, resume_id)
	)`,
	`CREATE TABLE IF NOT EXISTS company_employee_list (
		employee_id TEXT PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		full_name TEXT NOT NULL DEFAULT '',
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS app_config (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS password_reset_tokens (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL,
		code TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		used BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reset_tokens_email ON password_reset_tokens (email)`,
	`CREATE TABLE IF NOT EXISTS analysis_runs (
		id BIGSERIAL PRIMARY KEY,
		job_id TEXT NOT NULL,
		jd_hash TEXT NOT NULL,
		structure_hash TEXT NOT NULL,
		engine_version TEXT NOT NULL,
		jd_role TEXT NOT NULL DEFAULT '',
		weights JSONB NOT NULL DEFAULT '{}',
		response JSONB NOT NULL DEFAULT '{}',
		total_scanned INTEGER NOT NULL DEFAULT 0,
		shortlisted INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analysis_runs_job_id ON analysis_runs (job_id)`,
	`CREATE TABLE IF NOT EXISTS match_results (
		structure_hash TEXT NOT NULL,
		resume_id BIGINT NOT NULL,
		engine_version TEXT NOT NULL,
		result JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (structure_hash, resume_id)
	)`,
	`CREATE TABLE IF NOT EXISTS freelancer_sequence (
		year INTEGER PRIMARY KEY,
		last_seq BIGINT NOT NULL DEFAULT 0
	)`,
}

// EnsureSchema creates all tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
	}
	return nil
}
