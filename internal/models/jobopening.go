// internal/models/jobopening.go
package models

import "time"

const (
	JobStatusActive   = "active"
	JobStatusInactive = "inactive"
)

// JobTypes is the closed set of engagement types.
var JobTypes = []string{"internship", "full_time", "remote", "hybrid", "contract"}

// BusinessAreas is the closed set of business areas.
var BusinessAreas = []string{"technology", "consulting", "finance", "healthcare", "manufacturing", "other"}

type JobOpening struct {
	ID           int64     `json:"id"`
	JobID        string    `json:"job_id"`
	Title        string    `json:"title"`
	Location     string    `json:"location,omitempty"`
	BusinessArea string    `json:"business_area,omitempty"`
	JobType      string    `json:"job_type,omitempty"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type JobOpeningRequest struct {
	Title        string `json:"title"`
	Location     string `json:"location,omitempty"`
	BusinessArea string `json:"business_area,omitempty"`
	JobType      string `json:"job_type,omitempty"`
	Description  string `json:"description,omitempty"`
	Status       string `json:"status,omitempty"`
}

// IsValidJobType reports membership in the closed job type set.
func IsValidJobType(jobType string) bool {
	for _, t := range JobTypes {
		if t == jobType {
			return true
		}
	}
	return false
}

// IsValidBusinessArea reports membership in the closed business area set.
func IsValidBusinessArea(area string) bool {
	for _, a := range BusinessAreas {
		if a == area {
			return true
		}
	}
	return false
}
