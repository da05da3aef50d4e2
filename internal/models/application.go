// internal/models/application.go
package models

import "time"

// JobApplication links a candidate record to a job opening.
// A candidate can apply to a job at most once.
type JobApplication struct {
	ID        int64     `json:"id"`
	JobID     string    `json:"job_id"`
	ResumeID  int64     `json:"resume_id"`
	AppliedAt time.Time `json:"applied_at"`
}

// Applicant is a job application joined with its candidate profile.
type Applicant struct {
	Application JobApplication  `json:"application"`
	Candidate   CandidateRecord `json:"candidate"`
}
