// internal/models/analysis.go
package models

import "time"

// Confidence levels assigned to dimension evidence.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
	ConfidenceNone   = "none"
)

// JDStructure is the structured view of a job description used for scoring.
type JDStructure struct {
	JDRole             string   `json:"jd_role"`
	MinExperienceYears float64  `json:"min_experience_years"`
	SelectedDimensions []string `json:"selected_dimensions"`
	RequiredSkills     []string `json:"required_skills"`
}

// DimensionEvidence is what the evidence collector found for one dimension
// of one candidate.
type DimensionEvidence struct {
	Confidence     string   `json:"confidence"`
	EvidenceSkills []string `json:"evidence_skills,omitempty"`
	EvidenceText   string   `json:"evidence_text,omitempty"`
}

// MatchResult is one scored candidate-to-JD pairing.
type MatchResult struct {
	ResumeID      int64          `json:"resume_id"`
	CandidateName string         `json:"candidate_name"`
	Email         string         `json:"email,omitempty"`
	TotalScore    float64        `json:"total_score"`
	Breakdown     map[string]int `json:"score_breakdown"`
	MatchedSkills []string       `json:"matched_skills"`
	MissingSkills []string       `json:"missing_skills"`
	// EvidenceSkills are skills that backed a dimension score without being
	// JD-required; clients show them apart from matched skills.
	EvidenceSkills []string `json:"evidence_skills"`
	PrimarySector  string   `json:"primary_sector"`
	UniqueSectors  []string `json:"unique_sectors"`
	UniqueDomains  []string `json:"unique_domains"`
	Explanation    string   `json:"explanation"`
	FromCache      bool     `json:"from_cache,omitempty"`
}

// AnalysisResponse is the analyze-v2 endpoint payload.
type AnalysisResponse struct {
	JobID          string        `json:"job_id"`
	JDHash         string        `json:"jd_hash"`
	StructureHash  string        `json:"jd_structure_hash"`
	EngineVersion  string        `json:"engine_version"`
	JDRole         string        `json:"jd_role"`
	Weights        map[string]int `json:"weights"`
	Results        []MatchResult `json:"results"`
	Recommendation string        `json:"recommendation"`
	TotalScanned   int           `json:"total_scanned"`
	Shortlisted    int           `json:"shortlisted"`
	CreatedAt      time.Time     `json:"created_at"`
}

// AnalysisRun is the persisted history row for a completed analysis.
type AnalysisRun struct {
	ID            int64     `json:"id"`
	JobID         string    `json:"job_id"`
	JDHash        string    `json:"jd_hash"`
	StructureHash string    `json:"jd_structure_hash"`
	EngineVersion string    `json:"engine_version"`
	JDRole        string    `json:"jd_role"`
	ResultCount   int       `json:"result_count"`
	CreatedAt     time.Time `json:"created_at"`
}
